package server

import "html/template"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>FOPTD Model Controller Settings Calculator</title>
<style>
body { font-family: sans-serif; max-width: 40em; margin: 2em auto; }
label { display: block; margin-top: .8em; }
.result { background-color: #f0f8ff; padding: 10px; border-radius: 5px; }
.result p { font-size: 18px; }
.success { color: #1a7f37; }
.error { color: #b42318; }
</style>
</head>
<body>
<h1>FOPTD Model Controller Settings Calculator</h1>
<h2>Input Parameters</h2>
<form method="post" action="/calculate">
<label>Enter K (Process Gain): <input name="k" type="number" step="any" min="0" value="{{.K}}"></label>
<label>Enter θ (theta): <input name="theta" type="number" step="any" min="0" value="{{.Theta}}"></label>
<label>Enter τ (tau): <input name="tau" type="number" step="any" min="0" value="{{.Tau}}"></label>
<label>Select Type of Input:
<select name="input">{{range .InputTypes}}<option{{if eq . $.Input}} selected{{end}}>{{.}}</option>{{end}}</select>
</label>
<label>Select Type of Controller:
<select name="controller">{{range .ControllerTypes}}<option{{if eq . $.Controller}} selected{{end}}>{{.}}</option>{{end}}</select>
</label>
<p><button type="submit">Calculate Settings</button></p>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Settings}}
<h2>Controller Settings</h2>
<p class="success">{{.Success}}</p>
<div class="result">
{{range .Settings}}<p><strong>{{.Name}}:</strong> {{.Value}}</p>
{{end}}</div>
{{end}}
</body>
</html>
`))
