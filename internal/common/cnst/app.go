package cnst

const (
	AppName     = "kukkuta-kendra"
	CommandName = "kukkuta-apiserver"
)
