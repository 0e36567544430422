package docx

import "strings"

// Static and templated package parts. The XML here mirrors what office
// software emits for a minimal document; deviating from the part names or
// relationship types breaks interoperability.

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const documentOpenXML = `<w:document xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:w14="http://schemas.microsoft.com/office/word/2010/wordml"` +
	` mc:Ignorable="w14"><w:body>`

const documentCloseXML = `<w:sectPr>` +
	`<w:pgSz w:w="12240" w:h="15840"/>` +
	`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/>` +
	`<w:cols w:space="708"/><w:docGrid w:linePitch="360"/>` +
	`</w:sectPr></w:body></w:document>`

const tablePropsXML = `<w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblLayout w:type="fixed"/>` +
	`<w:tblBorders>` +
	`<w:top w:val="single" w:sz="6" w:space="0" w:color="000000"/>` +
	`<w:left w:val="single" w:sz="6" w:space="0" w:color="000000"/>` +
	`<w:bottom w:val="single" w:sz="6" w:space="0" w:color="000000"/>` +
	`<w:right w:val="single" w:sz="6" w:space="0" w:color="000000"/>` +
	`<w:insideH w:val="single" w:sz="6" w:space="0" w:color="000000"/>` +
	`<w:insideV w:val="single" w:sz="6" w:space="0" w:color="000000"/>` +
	`</w:tblBorders></w:tblPr>`

const tableGridXML = `<w:tblGrid><w:gridCol w:w="1800"/><w:gridCol w:w="5400"/><w:gridCol w:w="1800"/></w:tblGrid>`

const cellBordersXML = `<w:tcBorders>` +
	`<w:top w:val="single" w:sz="6" w:space="0" w:color="000000"/>` +
	`<w:left w:val="single" w:sz="6" w:space="0" w:color="000000"/>` +
	`<w:bottom w:val="single" w:sz="6" w:space="0" w:color="000000"/>` +
	`<w:right w:val="single" w:sz="6" w:space="0" w:color="000000"/>` +
	`</w:tcBorders>`

const cellMarginsXML = `<w:tcMar><w:top w:w="120"/><w:left w:w="120"/><w:bottom w:w="120"/><w:right w:w="120"/></w:tcMar>`

const stylesXML = xmlHeader +
	`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:eastAsia="Calibri" w:cs="Calibri"/>` +
	`<w:sz w:val="22"/><w:szCs w:val="22"/>` +
	`</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr/></w:pPrDefault></w:docDefaults></w:styles>`

const rootRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// contentTypesXML declares the fixed parts plus a Default entry per media
// extension actually present.
func contentTypesXML(media []mediaPart) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	seen := map[string]bool{}
	for _, m := range media {
		if seen[m.ext] {
			continue
		}
		seen[m.ext] = true
		b.WriteString(`<Default Extension="` + m.ext + `" ContentType="image/` + m.ext + `"/>`)
	}
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	b.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	b.WriteString(`</Types>`)
	return b.String()
}

// documentRelsXML lists the styles relationship (always rId1) followed by one
// image relationship per media part, in the order their ids were assigned.
func documentRelsXML(media []mediaPart) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	for _, m := range media {
		b.WriteString(`<Relationship Id="` + m.relID +
			`" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/` +
			m.filename + `"/>`)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}
