package apistrings

const (
	/// Basic User Related Strings
	UserNotFound = "user or account does not exist"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"

	/// Booking Related Strings
	InvalidBookingInput  = "check the booking fields, invalid request"
	InvalidBookingID     = "entered booking ID is invalid"
	InvalidStatusInput   = "check the 'status' key, invalid request"
	InvalidCancelInput   = "a cancellation needs a 'reason'"
	InvalidLocationInput = "check 'latitude' and 'longitude' keys, invalid request"
	InvalidSOSInput      = "check the SOS fields, invalid request"

	/// Wallet Related Strings
	UserNoWallet        = "no wallet exists for this account"
	InvalidTopUpInput   = "check 'amount' or 'method' keys, invalid request"
	InvalidAmountInput  = "check the 'service_amount' key, invalid request"
	ProvidersOnlyWallet = "wallets are kept for providers and shops"

	/// Notification Related Strings
	InvalidDeviceInput    = "check 'provider' or 'token' keys, invalid request"
	InvalidNotificationID = "entered notification ID is invalid"
	MissingDeviceToken    = "a device 'token' is required"

	/// Chat Related Strings
	InvalidMessageInput = "check the 'body' key, invalid request"
	ChatUpgradeFailed   = "could not upgrade the connection"
)
