// Package pipe builds command pipelines programmatically, mimicking shell
// pipes: the standard output of each stage feeds the standard input of the
// next.
//
//	h, err := pipe.New("ls /").Then("grep usr").Then("head -c 1").Finally()
//	if err != nil {
//	    return err
//	}
//	out, err := h.Output()
//
// Errors travel through the chain as values: the first failure (empty
// command, rejected spawn, missing output stream) puts the builder into a
// failed state that absorbs every later Then and surfaces at Finally. No
// stage is retried and a failed chain never recovers.
//
// Command lines are split on whitespace with no quoting support, so an
// argument containing spaces cannot be expressed. Shell features such as
// redirection, globbing, and variable expansion are out of scope.
package pipe
