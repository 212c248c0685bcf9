package constants

// Centralized constants for headers, env keys, routes and JSON keys.
const (
	// Environment variable keys
	EnvJWTSecret          = "JWT_SECRET"
	EnvGoogleClientID     = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "GOOGLE_CLIENT_SECRET"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
	}
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteSignup             = "/auth/signup"
	RouteLogin              = "/auth/login"
	RouteSessionToken       = "/auth/token"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"

	RouteCharacters         = "/characters"
	RouteCharacterByID      = "/characters/:characterID"
	RouteCharacterStat      = "/characters/:characterID/total-stat"
	RouteCharacterSkills    = "/characters/:characterID/skills"
	RouteCharacterLearn     = "/characters/:characterID/skills/:skillID"
	RouteCharacterEquipment = "/characters/:characterID/items/:itemID"

	RouteSkills = "/skills"
	RouteItems  = "/items"

	RouteMatchRooms     = "/match-rooms"
	RouteMatchRoomEnter = "/match-rooms/:matchRoomID/enter"
	RouteMatchHistories = "/match-histories"
	RoutePlayWebSocket  = "/ws/play/:matchRoomID"

	QueryParamAccessToken = "access_token"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
)

// Common error strings returned to clients
const (
	ErrInvalidRequest         = "Invalid request"
	ErrAuthRequired           = "Authentication required"
	ErrInvalidSession         = "Invalid session"
	ErrCharacterRequired      = "A character-scoped token is required"
	ErrMissingGoogleEnv       = "Missing Google OAuth configuration"
	ErrFailedExchangeToken    = "Failed to exchange authorization code"
	ErrFailedGetUserInfo      = "Failed to fetch user info"
	ErrNoEmailInGoogleProfile = "Google profile has no email"
	ErrFailedCreateSession    = "Failed to create session"
	ErrUsernameTaken          = "Username already taken"
	ErrInvalidCredentials     = "Invalid username or password"
)

// Log field names
const (
	LogFieldAddr        = "addr"
	LogFieldMatchRoomID = "match_room_id"
	LogFieldCharacterID = "character_id"
	LogFieldUserID      = "user_id"
	LogFieldCommand     = "command"
)
