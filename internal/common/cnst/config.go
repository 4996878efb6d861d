package cnst

const (
	ApiServerYaml = "apiserver.yaml"
)

const (
	RevocationTypeMemory = "memory"
	RevocationTypeRedis  = "redis"
)

const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)
