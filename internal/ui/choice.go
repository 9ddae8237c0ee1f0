package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidChoice is returned by ParseChoice for input outside 1..n.
type ErrInvalidChoice struct {
	Input string
}

func (e *ErrInvalidChoice) Error() string {
	return fmt.Sprintf("%q is an invalid choice!", e.Input)
}

// ParseChoice parses a menu choice such as "#3" or " 3 " and returns the
// 1-based index. Valid choices are 1..n.
func ParseChoice(input string, n int) (int, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(input, "#", ""))
	choice, err := strconv.Atoi(cleaned)
	if err != nil || choice < 1 || choice > n {
		return 0, &ErrInvalidChoice{Input: strings.TrimSpace(input)}
	}
	return choice, nil
}

// ChoicePrompt is the instance selection prompt for a menu of n entries.
func ChoicePrompt(n int) string {
	return fmt.Sprintf("select instance (#1-#%d)> ", n)
}

// UserPrompt asks for the login user.
const UserPrompt = "user> "

// ValidateUser rejects login names ssh would misparse.
func ValidateUser(user string) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return fmt.Errorf("a login user is required")
	}
	if strings.ContainsAny(user, "@ \t") {
		return fmt.Errorf("%q is not a valid login user", user)
	}
	return nil
}
