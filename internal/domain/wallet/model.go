package wallet

import "fmt"

// Account is the money-holding side of a user. CurrentBalance is in the
// smallest currency unit and is only ever incremented by settlement, through
// an atomic server-side update.
type Account struct {
	UserID         string
	DisplayName    string
	CurrentBalance int64
}

func (a Account) Validate() error {
	if a.UserID == "" {
		return fmt.Errorf("wallet user id is required")
	}
	if a.CurrentBalance < 0 {
		return fmt.Errorf("wallet balance cannot be negative")
	}

	return nil
}
