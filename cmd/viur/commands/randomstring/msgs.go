package randomstring

// Message constants
const (
	MsgShort   = "Print a random alphanumeric string"
	MsgLong    = "Print a random string of letters and digits drawn from a cryptographically secure source, e.g. for keys and passwords."
	MsgExample = `  viur random-string
  viur random-string -n 32
  viur random-string -n 20 --count 5`

	MsgFlagLength = "Length of the string"
	MsgFlagCount  = "Number of strings to print"
)
