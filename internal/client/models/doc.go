// Package models defines directory records as returned by the directory API,
// the reduced display models printed by the console, and the small generic
// containers (Option, Page, Resolved) shared by the services layer.
package models
