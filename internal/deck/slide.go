package deck

import (
	"fmt"
	"strings"
)

// emuPerInch converts the inch-based layout coordinates to English Metric
// Units, the unit every drawing element is expressed in.
const emuPerInch = 914400

func emu(inches float64) int64 {
	return int64(inches * emuPerInch)
}

// Fragment is one styled run of text. A trailing newline ends the paragraph.
type Fragment struct {
	Text   string
	Bold   bool
	Italic bool
	Mono   bool
	Color  string
	Size   int // points
}

// textBox is a positioned text shape. Zero-value Fill/Line mean no fill and
// no outline; Rotate is in degrees, negative for counter-clockwise.
type textBox struct {
	x, y, w, h float64 // inches
	frags      []Fragment
	fill       string
	line       string
	lineWidth  float64 // points
	align      string  // "l", "ctr", "r"
	anchor     string  // "t", "ctr", "b"
	rotate     int
}

// picture is a positioned image referencing a slide-local relationship.
type picture struct {
	x, y, w, h float64
	relID      string
	name       string
}

// mediaRef ties a slide-local relationship id to a media part filename.
type mediaRef struct {
	relID    string
	filename string
}

// slide is the in-memory model rendered to one slideN.xml part.
type slide struct {
	bg     string
	boxes  []textBox
	pics   []picture
	images []mediaRef
}

func (s *slide) addBox(b textBox) {
	s.boxes = append(s.boxes, b)
}

// xml renders the complete slide part.
func (s *slide) xml() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a=%q xmlns:r=%q xmlns:p=%q>`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld>`)
	if s.bg != "" {
		fmt.Fprintf(&b, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, s.bg)
	}
	b.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)

	id := 2
	for _, box := range s.boxes {
		b.WriteString(box.xml(id))
		id++
	}
	for _, pic := range s.pics {
		b.WriteString(pic.xml(id))
		id++
	}

	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String()
}

func (t textBox) xml(id int) string {
	var b strings.Builder
	b.WriteString(`<p:sp><p:nvSpPr>`)
	fmt.Fprintf(&b, `<p:cNvPr id="%d" name="TextBox %d"/>`, id, id)
	b.WriteString(`<p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr>`)

	if t.rotate != 0 {
		// Rotation is in 60000ths of a degree.
		fmt.Fprintf(&b, `<a:xfrm rot="%d">`, t.rotate*60000)
	} else {
		b.WriteString(`<a:xfrm>`)
	}
	fmt.Fprintf(&b, `<a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`,
		emu(t.x), emu(t.y), emu(t.w), emu(t.h))
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)

	if t.fill != "" {
		fmt.Fprintf(&b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, t.fill)
	} else {
		b.WriteString(`<a:noFill/>`)
	}
	if t.line != "" {
		// Line width is in EMU; one point is 12700.
		fmt.Fprintf(&b, `<a:ln w="%d"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:ln>`,
			int64(t.lineWidth*12700), t.line)
	}
	b.WriteString(`</p:spPr><p:txBody>`)

	anchor := t.anchor
	if anchor == "" {
		anchor = "t"
	}
	fmt.Fprintf(&b, `<a:bodyPr wrap="square" anchor="%s"/><a:lstStyle/>`, anchor)
	b.WriteString(paragraphsXML(t.frags, t.align))
	b.WriteString(`</p:txBody></p:sp>`)
	return b.String()
}

// paragraphsXML renders the fragment stream, starting a new paragraph at
// every trailing newline.
func paragraphsXML(frags []Fragment, align string) string {
	var b strings.Builder
	open := false
	openP := func() {
		b.WriteString(`<a:p>`)
		if align != "" {
			fmt.Fprintf(&b, `<a:pPr algn="%s"/>`, align)
		}
		open = true
	}
	closeP := func() {
		b.WriteString(`</a:p>`)
		open = false
	}

	for _, f := range frags {
		parts := strings.Split(f.Text, "\n")
		for i, part := range parts {
			last := i == len(parts)-1
			if last && part == "" {
				// Trailing newline: the paragraph break already happened.
				continue
			}
			if !open {
				openP()
			}
			b.WriteString(runXML(part, f))
			if !last {
				closeP()
			}
		}
	}
	if open {
		closeP()
	}
	// A text body must contain at least one paragraph.
	if !strings.Contains(b.String(), "<a:p>") {
		openP()
		closeP()
	}
	return b.String()
}

func runXML(text string, f Fragment) string {
	var b strings.Builder
	b.WriteString(`<a:r><a:rPr lang="en-US"`)
	if f.Size > 0 {
		fmt.Fprintf(&b, ` sz="%d"`, f.Size*100)
	}
	if f.Bold {
		b.WriteString(` b="1"`)
	}
	if f.Italic {
		b.WriteString(` i="1"`)
	}
	b.WriteString(` dirty="0">`)
	if f.Color != "" {
		fmt.Fprintf(&b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, f.Color)
	}
	face := "Calibri"
	if f.Mono {
		face = "Courier New"
	}
	fmt.Fprintf(&b, `<a:latin typeface="%s"/>`, face)
	b.WriteString(`</a:rPr><a:t>` + escapeXML(text) + `</a:t></a:r>`)
	return b.String()
}

func (p picture) xml(id int) string {
	var b strings.Builder
	b.WriteString(`<p:pic><p:nvPicPr>`)
	fmt.Fprintf(&b, `<p:cNvPr id="%d" name="%s"/>`, id, escapeXML(p.name))
	b.WriteString(`<p:cNvPicPr/><p:nvPr/></p:nvPicPr>`)
	fmt.Fprintf(&b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, p.relID)
	b.WriteString(`<p:spPr><a:xfrm>`)
	fmt.Fprintf(&b, `<a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/>`, emu(p.x), emu(p.y), emu(p.w), emu(p.h))
	b.WriteString(`</a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
	return b.String()
}

// escapeXML escapes the five XML special characters before any free text is
// written into a slide part.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)
