package chat

import "fmt"

var (
	ErrBookingNotFound = fmt.Errorf("booking not found")
	ErrNotYours        = fmt.Errorf("you are not part of this booking")
	ErrChatClosed      = fmt.Errorf("chat is only open while the booking is active")
	ErrEmptyMessage    = fmt.Errorf("message body is empty")
	ErrMessageTooLong  = fmt.Errorf("message body is too long")
)
