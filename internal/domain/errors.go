package domain

// ValidationError marks input rejected before it reaches a store. Its
// message is safe to return to clients.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
