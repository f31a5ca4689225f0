package lab

// swagger:parameters findLabById findLabMembers
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}
