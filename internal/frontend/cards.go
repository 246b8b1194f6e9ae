package frontend

import (
	"fmt"
	"strings"

	"github.com/frondster/frondster/internal/game"
)

var cardColors = map[game.Color]string{
	game.Red:    "#FF0000",
	game.Green:  "#00A000",
	game.Purple: "#800080",
}

// CardLabel is the text shown under a card, e.g. "red oval 1 solid".
func CardLabel(card game.Card) string {
	return fmt.Sprintf("%s %s %d %s", card.Color, card.Shape, card.Count.N(), card.Shading)
}

func shapeElement(shape game.Shape) (tag, attrs string) {
	switch shape {
	case game.Oval:
		return "ellipse", `cx="50" cy="50" rx="34" ry="11"`
	case game.Squiggle:
		return "path", `d="M16,52 Q33,30 50,50 T84,48" stroke-linecap="round" stroke-linejoin="round"`
	default:
		return "polygon", `points="16,50 50,39 84,50 50,61"`
	}
}

func shadingStyle(card game.Card) string {
	color := cardColors[card.Color]
	switch card.Shading {
	case game.Solid:
		return fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="2"`, color, color)
	case game.Striped:
		return fmt.Sprintf(`fill="url(#striped-%s)" stroke="%s" stroke-width="2"`, card.Color, color)
	default:
		return fmt.Sprintf(`fill="none" stroke="%s" stroke-width="2"`, color)
	}
}

// CardSVG draws the symbols of a card, stacked vertically.
func CardSVG(card game.Card) string {
	color := cardColors[card.Color]
	tag, attrs := shapeElement(card.Shape)
	style := shadingStyle(card)

	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="80%" height="80%" viewBox="0 0 100 100" preserveAspectRatio="xMidYMid meet" class="card-svg">`)
	fmt.Fprintf(&sb, `<defs><pattern id="striped-%s" patternUnits="userSpaceOnUse" width="4" height="4">`, card.Color)
	fmt.Fprintf(&sb, `<path d="M-1,1 l2,-2 M0,4 l4,-4 M3,5 l2,-2" stroke="%s" stroke-width="1" /></pattern></defs>`, color)

	n := card.Count.N()
	for i := range n {
		offset := i*28 - (n-1)*14
		fmt.Fprintf(&sb, `<g transform="translate(0, %d)"><%s %s %s /></g>`, offset, tag, attrs, style)
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}
