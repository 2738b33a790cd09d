package domain

import (
	"encoding/json"
	"strings"
)

// GuestID is the owner value stored for bookings and reviews made without an account.
const GuestID = "guest"

// Owner is either a registered user or a guest. The zero value is a guest.
type Owner struct {
	userID string
}

func Guest() Owner {
	return Owner{}
}

// RegisteredUser returns the owner for id; a blank id or the guest sentinel yields Guest.
func RegisteredUser(id string) Owner {
	id = strings.TrimSpace(id)
	if id == "" || id == GuestID {
		return Guest()
	}
	return Owner{userID: id}
}

func (o Owner) IsGuest() bool {
	return o.userID == ""
}

// UserID reports the registered user id, ok is false for guests.
func (o Owner) UserID() (string, bool) {
	return o.userID, o.userID != ""
}

func (o Owner) String() string {
	if o.IsGuest() {
		return GuestID
	}
	return o.userID
}

func (o Owner) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*o = Guest()
		return nil
	}
	*o = RegisteredUser(*s)
	return nil
}
