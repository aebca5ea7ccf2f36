package consts

const (
	ObjectIDRegexStr   = `^[0-9a-fA-F]{24}$`
	ValidPhonePrefixes = `^(7|07|2637|263)\d{8}$`
	ValidPinCode       = `^\d{4}$`
	ValidReceiptNumber = `^[A-Z0-9-]+$`
)
