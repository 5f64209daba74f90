package redis

const (
	keyPrefix = "blog/"

	// KeyPrefixSession is the key prefix for admin refresh sessions.
	KeyPrefixSession = keyPrefix + "sessions/"
)
