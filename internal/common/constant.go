package common

// AuthorizationHeaderName carries the bearer token on inbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// MemoryDSN selects the in-memory repositories instead of PostgreSQL.
const MemoryDSN = "memory"
