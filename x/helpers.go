package x

// Validater is implemented by anything that can self-validate. This is
// normally a message or a model.
//
// (Yes, we know the English word is validator, but that name is already
// reserved by consensus engines, so we use this misspelling.)
type Validater interface {
	Validate() error
}
