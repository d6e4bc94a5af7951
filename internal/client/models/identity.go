package models

// Sign-in types that carry a human-readable user name.
const (
	SignInTypeUserName     = "userName"
	SignInTypeEmailAddress = "emailAddress"
)

// Identity is a sign-in identity attached to a user.
type Identity struct {
	SignInType       string `json:"signInType"`
	Issuer           string `json:"issuer,omitempty"`
	IssuerAssignedID string `json:"issuerAssignedId"`
}

// AssignedID returns the issuer-assigned id of the first identity whose
// sign-in type is userName or emailAddress. The second result is false when
// no identity qualifies.
func AssignedID(ids []Identity) (string, bool) {
	for _, id := range ids {
		switch id.SignInType {
		case SignInTypeUserName, SignInTypeEmailAddress:
			return id.IssuerAssignedID, true
		}
	}
	return "", false
}
