package admin

import "errors"

// Sentinel errors for the admin edit workflow.
var (
	// ErrAssetTooLarge is returned when a staged image exceeds MaxImageSize.
	ErrAssetTooLarge = errors.New("image exceeds the maximum allowed size")

	// ErrUnsupportedImage is returned when a staged file is not an image.
	ErrUnsupportedImage = errors.New("only image uploads are accepted")

	// ErrNoDraft is returned when Submit or StageImage is called outside
	// the Editing state.
	ErrNoDraft = errors.New("no draft is being edited")
)
