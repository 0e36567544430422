package docx

import (
	"bytes"
	"fmt"
	"image"
	"regexp"

	// Registered so image.DecodeConfig recognizes the embeddable formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/easylearning/docforge/internal/logging"
)

// imageTokens matches the inline placeholder left by the markup importer.
var imageTokens = regexp.MustCompile(`\[Image: ([A-Za-z0-9_\-]+)\]\s*`)

const (
	// emuPerPixel converts 96-dpi pixels to English Metric Units.
	emuPerPixel = 9525

	// maxImageWidthEMU caps embedded images at 3.5in so they fit the value
	// column; height scales proportionally.
	maxImageWidthEMU = 3200400
)

// mediaPart is one file under word/media/ plus its relationship id.
type mediaPart struct {
	relID    string
	filename string
	ext      string
	data     []byte
}

// buildState threads the relationship-id counter and collected media through
// the whole document build. Ids are handed out in document order, starting
// after the fixed styles relationship (rId1), so the relationships part stays
// consistent with the content part by construction.
type buildState struct {
	log      *logging.Logger
	nextRel  int
	media    []mediaPart
	embedded map[string]string
}

func newBuildState(log *logging.Logger) *buildState {
	return &buildState{log: log, nextRel: 2, embedded: make(map[string]string)}
}

// embed registers the image as a media part and returns its drawing element.
// A payload referenced from several fields registers one part on first use;
// later references reuse its relationship, so part names stay unique across
// the archive. ok is false when the payload is absent or does not decode as a
// supported raster format; the caller keeps the surrounding text and moves on.
func (st *buildState) embed(img Image) (string, bool) {
	if xml, ok := st.embedded[img.ID]; ok {
		return xml, true
	}
	if len(img.Data) == 0 {
		st.log.Warn("skipping image without payload", "id", img.ID)
		return "", false
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		st.log.Warn("skipping undecodable image", "id", img.ID, "error", err)
		return "", false
	}

	relID := fmt.Sprintf("rId%d", st.nextRel)
	st.nextRel++

	part := mediaPart{
		relID:    relID,
		filename: fmt.Sprintf("%s.%s", img.ID, format),
		ext:      format,
		data:     img.Data,
	}
	st.media = append(st.media, part)

	cx, cy := imageExtent(cfg.Width, cfg.Height)
	xml := drawingXML(relID, img.ID, cx, cy)
	st.embedded[img.ID] = xml
	return xml, true
}

// imageExtent converts pixel dimensions to EMU, scaled down to the column cap
// when too wide.
func imageExtent(w, h int) (cx, cy int64) {
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	cx = int64(w) * emuPerPixel
	cy = int64(h) * emuPerPixel
	if cx > maxImageWidthEMU {
		cy = cy * maxImageWidthEMU / cx
		cx = maxImageWidthEMU
	}
	return cx, cy
}

// drawingXML renders an inline picture element referencing the media part by
// relationship id.
func drawingXML(relID, name string, cx, cy int64) string {
	return fmt.Sprintf(`<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%[3]d" cy="%[4]d"/>`+
		`<wp:docPr id="1" name="%[2]s"/>`+
		`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`+
		`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:nvPicPr><pic:cNvPr id="1" name="%[2]s"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%[1]s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%[3]d" cy="%[4]d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing>`,
		relID, escapeXML(name), cx, cy)
}
