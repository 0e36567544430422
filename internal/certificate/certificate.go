// Package certificate renders achievement certificates as standalone HTML
// documents sized to a fixed 1600x1131 canvas, ready for the raster renderer
// to capture as PNG or PDF. It also parses batch rosters into per-student
// entries.
package certificate

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"
)

// Data is everything one certificate render needs.
type Data struct {
	StudentName    string
	Rank           int
	TestsAttempted int
	Medal          string // gold, silver, bronze, participation
	EventName      string
	Date           time.Time
}

// Entry is one roster row: "rank, name, tests".
type Entry struct {
	Rank           int
	StudentName    string
	TestsAttempted int
}

// Authored canvas size. The renderer fixes its viewport to these dimensions
// so output is deterministic, not responsive-reflow-dependent.
const (
	CanvasWidth  = 1600
	CanvasHeight = 1131
)

// HTML renders the certificate document for the given data.
func HTML(d Data) (string, error) {
	var b strings.Builder
	err := certificateTemplate.Execute(&b, templateData{
		StudentName:    d.StudentName,
		Rank:           d.Rank,
		TestsAttempted: d.TestsAttempted,
		MedalEmoji:     medalEmoji(d.Medal),
		EventName:      strings.ToUpper(d.EventName),
		Date:           d.Date.Format("January 02, 2006"),
	})
	if err != nil {
		return "", fmt.Errorf("render certificate template: %w", err)
	}
	return b.String(), nil
}

func medalEmoji(medal string) string {
	switch medal {
	case "gold":
		return "🥇"
	case "silver":
		return "🥈"
	case "bronze":
		return "🥉"
	}
	return "⭐"
}

// ParseBatch parses a roster, one entry per non-blank line, fields separated
// by commas: rank, student name, tests attempted.
func ParseBatch(text string) ([]Entry, error) {
	var entries []Entry
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want 3 fields (rank, name, tests), got %d", i+1, len(fields))
		}
		rank, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: rank %q is not an integer", i+1, strings.TrimSpace(fields[0]))
		}
		tests, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: tests %q is not an integer", i+1, strings.TrimSpace(fields[2]))
		}
		name := strings.TrimSpace(fields[1])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty student name", i+1)
		}
		entries = append(entries, Entry{Rank: rank, StudentName: name, TestsAttempted: tests})
	}
	return entries, nil
}

type templateData struct {
	StudentName    string
	Rank           int
	TestsAttempted int
	MedalEmoji     string
	EventName      string
	Date           string
}

var certificateTemplate = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8" />
<title>Certificate</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body, html { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif; background: white; }
.certificate { position: relative; width: 1600px; height: 1131px; background-color: #ffffff; overflow: hidden; }
.certificate-border { position: absolute; top: 14px; left: 14px; right: 14px; bottom: 14px; border-radius: 22px; background: #f8fbff; }
.certificate-inner-border { position: absolute; top: 32px; left: 32px; right: 32px; bottom: 32px; border-radius: 16px; border: 3px solid rgba(11,130,182,0.12); }
.ribbon { position: absolute; top: 0; left: 0; right: 0; height: 120px; background: linear-gradient(to bottom, rgba(14,165,233,0.18), rgba(255,255,255,0)); border-bottom: 1px solid #dfeefe; }
.logo-container { position: absolute; top: 48px; left: 50%; transform: translateX(-50%); display: flex; align-items: center; gap: 16px; }
.brand-name { font-size: 31px; font-weight: bold; color: #1e40af; letter-spacing: -0.025em; line-height: 1; }
.brand-tagline { font-size: 15px; color: #6b7280; margin-top: 4px; }
.content { position: absolute; left: 80px; right: 80px; top: 180px; bottom: 320px; display: flex; flex-direction: column; align-items: center; justify-content: center; gap: 32px; }
.certificate-title { font-size: 67px; font-family: Georgia, serif; font-weight: bold; color: #1e40af; margin-bottom: 8px; line-height: 1; text-align: center; }
.event-name { font-size: 18px; font-weight: bold; letter-spacing: 6px; text-transform: uppercase; color: #1d4ed8; text-align: center; }
.awarded-label { color: #6b7280; font-weight: 600; letter-spacing: 2px; text-transform: uppercase; margin-bottom: 16px; font-size: 14px; text-align: center; }
.student-name { font-size: 63px; font-weight: bold; color: #1f2937; line-height: 1; text-align: center; }
.medal-badge { display: flex; align-items: center; justify-content: center; width: 180px; height: 180px; border-radius: 50%; background: linear-gradient(135deg, #fef3c7, #f59e0b); border: 4px solid #d97706; }
.medal-content { display: flex; flex-direction: column; align-items: center; gap: 8px; }
.medal-emoji { font-size: 48px; line-height: 1; }
.medal-rank { font-size: 16px; font-weight: bold; color: #92400e; letter-spacing: 1px; }
.metadata { display: flex; gap: 24px; justify-content: center; flex-wrap: wrap; }
.metadata-item { padding: 12px 20px; border-radius: 24px; border: 1px solid #e2ecf7; background-color: #f7fbff; font-weight: 600; display: flex; align-items: center; gap: 8px; font-size: 14px; color: #374151; }
</style>
</head>
<body>
<div class="certificate">
  <div class="certificate-border"></div>
  <div class="certificate-inner-border"></div>
  <div class="ribbon"></div>
  <div class="logo-container">
    <div class="brand-info">
      <div class="brand-name">EasyLearning</div>
      <div class="brand-tagline">Making Learning Easy</div>
    </div>
  </div>
  <div class="content">
    <div class="title">
      <h1 class="certificate-title">Certificate of Achievement</h1>
      <div class="event-name">{{.EventName}}</div>
    </div>
    <div class="awarded-to">
      <div class="awarded-label">THIS IS PROUDLY AWARDED TO</div>
      <div class="student-name">{{.StudentName}}</div>
    </div>
    <div class="medal-badge">
      <div class="medal-content">
        <div class="medal-emoji">{{.MedalEmoji}}</div>
        <div class="medal-rank">RANK {{.Rank}}</div>
      </div>
    </div>
    <div class="metadata">
      <div class="metadata-item"><span>🏆</span><span>Rank {{.Rank}}</span></div>
      <div class="metadata-item"><span>📝</span><span>{{.TestsAttempted}} Tests Attempted</span></div>
      <div class="metadata-item"><span>📅</span><span>{{.Date}}</span></div>
    </div>
  </div>
</div>
</body>
</html>`))
