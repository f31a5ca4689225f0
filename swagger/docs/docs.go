package docs

// swagger:response Error
type Error struct {
	// The error message
	//in: body
	Message string
}
