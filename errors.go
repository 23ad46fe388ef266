package viewscene

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Error types attached to configuration errors. Inspect them with
// errors.Type from github.com/aukilabs/go-tooling/pkg/errors.
const (
	ErrTypeAlreadyParented  = "subscene-already-parented"
	ErrTypeBadAspect        = "bad-embedding-aspect"
	ErrTypeBadEmbedding     = "bad-embedding-value"
	ErrTypeRootInherit      = "root-cannot-inherit"
	ErrTypeBadButton        = "bad-mouse-button"
	ErrTypeBadMode          = "bad-mouse-mode"
	ErrTypeMissingViewpoint = "missing-viewpoint"
	ErrTypeUnsupportedNode  = "unsupported-node"
	ErrTypeBadConfig        = "bad-config"
	ErrTypeCycle            = "subscene-cycle"
)

func errBadButton(button int) error {
	return errors.New("mouse button out of range").
		WithType(ErrTypeBadButton).
		WithTag("button", button)
}

func errBadAspect(aspect Aspect) error {
	return errors.New("bad embedding requested").
		WithType(ErrTypeBadAspect).
		WithTag("aspect", int(aspect))
}
