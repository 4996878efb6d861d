package cnst

const (
	LangEN      = "en"
	LangHI      = "hi"
	LangDefault = LangEN
)

const (
	// XLang is both the request header and the gin context key carrying the language
	XLang = "X-Lang"
	// CtxKeyPrincipal holds the resolved principal of the current request
	CtxKeyPrincipal = "principal"
	// CtxKeyToken holds the parsed bearer token claims
	CtxKeyToken = "claims"
)
