package server

import (
	"bytes"
	"html/template"
	"math"
	"net/http"

	"github.com/KaramelBytes/cardash/internal/dashboard"
	"github.com/KaramelBytes/cardash/internal/dataset"
	"github.com/KaramelBytes/cardash/internal/filter"
	"github.com/KaramelBytes/cardash/internal/view"
)

type pageData struct {
	Title       string
	Widgets     filter.Widgets
	Selected    map[string]map[string]bool
	AgeLo       int
	AgeHi       int
	Numeric     []string
	Categorical []string
	Columns     []string
	Hover       map[string]bool
	Sel         view.Selections
	Dash        *view.Dashboard
	Query       template.URL
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	snap, err := s.recompute(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, s.pageData(snap)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) pageData(snap *dashboard.Snapshot) pageData {
	ds := s.app.Dataset()
	schema := ds.Schema()
	d := pageData{
		Title:       "Car Dekho Data Explorer",
		Widgets:     s.app.Options(),
		Selected:    map[string]map[string]bool{},
		Numeric:     schema.SortedNames(dataset.Numeric),
		Categorical: schema.SortedNames(dataset.Categorical),
		Columns:     ds.Header(),
		Hover:       map[string]bool{},
		Sel:         snap.Selections,
		Dash:        snap.Dashboard,
	}
	for col, vals := range snap.State.Categories {
		set := map[string]bool{}
		for _, v := range vals {
			set[v] = true
		}
		d.Selected[col] = set
	}
	d.AgeLo, d.AgeHi = d.Widgets.Age.Min, d.Widgets.Age.Max
	if rng, ok := snap.State.Ranges[dataset.ColVehicleAge]; ok {
		if !math.IsInf(rng.Lo, 0) {
			d.AgeLo = int(math.Floor(rng.Lo))
		}
		if !math.IsInf(rng.Hi, 0) {
			d.AgeHi = int(math.Ceil(rng.Hi))
		}
	}
	for _, h := range snap.Selections.ScatterHover {
		d.Hover[h] = true
	}
	q := snap.State.Values()
	for k, vs := range snap.Selections.Values() {
		q[k] = vs
	}
	d.Query = template.URL(q.Encode())
	return d
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:sans-serif;margin:0;display:flex}
aside{width:280px;padding:16px;background:#f4f4f4;min-height:100vh}
main{flex:1;padding:16px}
select[multiple]{width:100%;min-height:90px}
nav a{margin-right:12px}
table{border-collapse:collapse;margin:8px 0}
td,th{border:1px solid #ccc;padding:4px 8px;font-size:13px}
.empty{color:#888;font-style:italic}
img{max-width:100%;display:block;margin:12px 0}
</style>
</head>
<body>
<aside>
<form method="get" action="/">
<h3>Filter Data</h3>
{{range $d := .Widgets.Dimensions}}
<label>{{$d.Label}}<br>
<select name="{{$d.Column}}" multiple>
{{range $lvl := $d.Levels}}<option value="{{$lvl}}"{{if index $.Selected $d.Column $lvl}} selected{{end}}>{{$lvl}}</option>
{{end}}</select></label><br>
{{end}}
<label>{{.Widgets.Age.Label}}<br>
<input type="number" name="vehicle_age_min" min="{{.Widgets.Age.Min}}" max="{{.Widgets.Age.Max}}" value="{{.AgeLo}}">
to
<input type="number" name="vehicle_age_max" min="{{.Widgets.Age.Min}}" max="{{.Widgets.Age.Max}}" value="{{.AgeHi}}">
</label>
<h3>Panels</h3>
<label>Scatter X <select name="x">{{range .Numeric}}<option{{if eq . $.Sel.ScatterX}} selected{{end}}>{{.}}</option>{{end}}</select></label><br>
<label>Scatter Y <select name="y">{{range .Numeric}}<option{{if eq . $.Sel.ScatterY}} selected{{end}}>{{.}}</option>{{end}}</select></label><br>
<label>Color <select name="color"><option value="none">none</option>{{range .Categorical}}<option{{if eq . $.Sel.ScatterColor}} selected{{end}}>{{.}}</option>{{end}}</select></label><br>
<label>Hover <select name="hover" multiple>{{range .Columns}}<option{{if index $.Hover .}} selected{{end}}>{{.}}</option>{{end}}</select></label><br>
<label>Histogram <select name="hist">{{range .Numeric}}<option{{if eq . $.Sel.HistColumn}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<input type="number" name="bins" min="1" max="500" value="{{.Sel.HistBins}}"><br>
<label>Overlay <select name="hist_group"><option value="none">none</option>{{range .Categorical}}<option{{if eq . $.Sel.HistGroup}} selected{{end}}>{{.}}</option>{{end}}</select></label><br>
<label>Boxplot <select name="box">{{range .Numeric}}<option{{if eq . $.Sel.BoxColumn}} selected{{end}}>{{.}}</option>{{end}}</select></label><br>
<label>Group by <select name="box_group"><option value="none">none</option>{{range .Categorical}}<option{{if eq . $.Sel.BoxGroup}} selected{{end}}>{{.}}</option>{{end}}</select></label><br>
<button type="submit">Apply</button>
</form>
</aside>
<main>
<h1>{{.Title}}</h1>
<p>Showing {{.Dash.Rows}} of {{.Dash.Total}} rows from {{.Dash.Source}}.
<a href="/export.csv?{{.Query}}" download="{{.Dash.Export}}">Download Filtered Data as CSV</a></p>
<nav>{{range .Dash.Tabs}}<a href="#{{.ID}}">{{.Title}}</a>{{end}}</nav>
{{range $tab := .Dash.Tabs}}
<section id="{{$tab.ID}}">
<h2>{{$tab.Title}}</h2>
{{range $tab.Tables}}
<h3>{{.Title}}</h3>
{{if .Empty}}<p class="empty">{{.Message}}</p>{{else}}
<table><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>{{end}}
{{end}}
{{range $tab.Charts}}
<img src="/charts/{{.ID}}.png?{{$.Query}}" alt="{{.Title}}">
{{end}}
</section>
{{end}}
</main>
</body>
</html>
`))
