package i18n

import (
	ut "github.com/go-playground/universal-translator"

	"github.com/go-playground/locales/en"
)

var UT = ut.New(en.New())
