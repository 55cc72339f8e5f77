package common

// AuthorizationHeaderName is the HTTP header carrying the session token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// EnvDevelopment is the environment name in which internal error details are
// returned to clients.
const EnvDevelopment = "development"
