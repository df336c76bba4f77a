package expr

import (
	"github.com/ezrec/sinefw/translate"
)

var f = translate.From

// ErrExpression is an expression that does not evaluate to a number.
type ErrExpression string

func (err ErrExpression) Error() string {
	return f("'%v' is not a numeric expression", string(err))
}

// ErrEval is an expression that failed to parse or run.
type ErrEval struct {
	Expr string
	Err  error
}

func (err *ErrEval) Error() string {
	return f("'%v' %v", err.Expr, err.Err)
}

func (err *ErrEval) Unwrap() error {
	return err.Err
}
