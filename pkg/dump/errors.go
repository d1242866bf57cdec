package dump

import "fmt"

// InputError the dump could not be opened or read
type InputError struct {
	Path string
	Err  error
}

func (err *InputError) Error() string {
	return fmt.Sprintf("read input %s: %v", err.Path, err.Err)
}

func (err *InputError) Unwrap() error {
	return err.Err
}
