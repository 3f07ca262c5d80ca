package api

// Backend paths, relative to the API base URL
const (
	PathProfile        = "/childauth/getprofile"
	PathRegister       = "/auth/register"
	PathForgotPassword = "/auth/forgot-password"
	PathResetPassword  = "/auth/reset-password"
)

// Content library endpoints
const (
	EndpointVideos = "/child/content/videos"
	EndpointImages = "/child/content/images"
	EndpointPDFs   = "/child/content/pdfs"
	EndpointTexts  = "/child/content/texts"
)

// LibraryEndpoints lists the content library sections in display order
var LibraryEndpoints = []string{EndpointVideos, EndpointImages, EndpointPDFs, EndpointTexts}

// Operation names used in errors and logs
const (
	OpGetProfile     = "get profile"
	OpListContent    = "list content"
	OpRegister       = "register"
	OpForgotPassword = "forgot password"
	OpResetPassword  = "reset password"
)
