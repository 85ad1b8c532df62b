package domain

// Capability is a single permission granted to an operator by the external
// identity provider. The core never derives capabilities itself; it only
// checks the set handed to it with each mutating call.
type Capability string

const (
	CapCreateReceipt Capability = "create-receipt"
	CapRequestVoid   Capability = "request-void"
	CapApproveVoid   Capability = "approve-void"
	CapVerifyReceipt Capability = "verify-receipt"
	CapManageItems   Capability = "manage-items"
	CapViewReports   Capability = "view-reports"
)

// Actor identifies the operator performing an operation, together with the
// capability set supplied by the identity collaborator.
type Actor struct {
	OperatorID   string       `json:"operatorID"`
	DisplayName  string       `json:"displayName"`
	Capabilities []Capability `json:"capabilities"`
}

// Can reports whether the actor holds the given capability.
func (a Actor) Can(cap Capability) bool {
	for _, c := range a.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}
