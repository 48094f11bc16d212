package testhelpers

import (
	"fmt"
	"reflect"

	"github.com/onsi/gomega/types"
)

type causer interface {
	Cause() error
}

// BeErrorType matches when any error in the Cause chain of the actual error
// is a pointer to the type of expected, e.g. BeErrorType(groot.RegistryErr{}).
func BeErrorType(expected interface{}) types.GomegaMatcher {
	return &beErrorTypeMatcher{expected: expected}
}

type beErrorTypeMatcher struct {
	expected interface{}
}

func (m *beErrorTypeMatcher) Match(actual interface{}) (bool, error) {
	if actual == nil {
		return false, nil
	}

	if _, ok := m.expected.(error); !ok {
		return false, fmt.Errorf("BeErrorType matcher expects an error type, got %T", m.expected)
	}

	actualErr, ok := actual.(error)
	if !ok {
		return false, fmt.Errorf("BeErrorType matcher expects an error, got %T", actual)
	}

	wanted := reflect.PtrTo(reflect.TypeOf(m.expected))
	for err := actualErr; err != nil; {
		if reflect.TypeOf(err) == wanted {
			return true, nil
		}

		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}

	return false, nil
}

func (m *beErrorTypeMatcher) FailureMessage(actual interface{}) string {
	if actual == nil {
		return "Expected an error, got nil"
	}

	return fmt.Sprintf("Expected error\n\t%v (%T)\nto be of type\n\t%s", actual, actual, reflect.TypeOf(m.expected))
}

func (m *beErrorTypeMatcher) NegatedFailureMessage(actual interface{}) string {
	return fmt.Sprintf("Expected error\n\t%v (%T)\nnot to be of type\n\t%s", actual, actual, reflect.TypeOf(m.expected))
}
