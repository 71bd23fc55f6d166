package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Duel      FontName = "duel"
	DuelTitle FontName = "duel-title"
	DuelSmall FontName = "duel-small"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

var fonts = map[FontName]font.Face{}

// LoadDefaults loads every face from the bundled Go Regular font.
func LoadDefaults() {
	LoadFontWithSize(Duel, goregular.TTF, 14)
	LoadFontWithSize(DuelTitle, goregular.TTF, 28)
	LoadFontWithSize(DuelSmall, goregular.TTF, 10)
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) {
	fontData, _ := truetype.Parse(ttf)
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
}

func getFont(name FontName) font.Face {
	f, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}
