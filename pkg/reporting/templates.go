/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: templates.go
Description: HTML templates for the Akaylee Mapper report. Provides a beautiful,
modern, responsive page showing detected patterns, confidence bands, filter
results, and warnings.
*/

package reporting

// reportTemplate is the main HTML template for the analysis report
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Akaylee Mapper Report</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            color: #333;
        }

        .container {
            max-width: 1100px;
            margin: 0 auto;
            padding: 20px;
        }

        .header {
            background: rgba(255, 255, 255, 0.95);
            backdrop-filter: blur(10px);
            border-radius: 20px;
            padding: 30px;
            margin-bottom: 30px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
            text-align: center;
        }

        .header h1 {
            color: #4a5568;
            font-size: 2.2rem;
            margin-bottom: 10px;
            font-weight: 700;
        }

        .header p {
            color: #718096;
            font-size: 1.05rem;
        }

        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }

        .stat-card {
            background: rgba(255, 255, 255, 0.95);
            border-radius: 15px;
            padding: 25px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
        }

        .stat-card h3 {
            color: #4a5568;
            font-size: 1.1rem;
            margin-bottom: 12px;
        }

        .stat-card .value {
            font-size: 2.3rem;
            font-weight: 700;
            color: #2d3748;
        }

        .section {
            background: rgba(255, 255, 255, 0.95);
            border-radius: 15px;
            padding: 25px;
            margin-bottom: 25px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
        }

        .section h2 {
            color: #4a5568;
            margin-bottom: 15px;
        }

        table {
            width: 100%;
            border-collapse: collapse;
        }

        th, td {
            text-align: left;
            padding: 10px 12px;
            border-bottom: 1px solid #e2e8f0;
        }

        th {
            color: #4a5568;
            font-weight: 600;
        }

        .badge {
            display: inline-block;
            padding: 3px 10px;
            border-radius: 999px;
            font-size: 0.85rem;
            font-weight: 600;
        }

        .badge-high { background: #c6f6d5; color: #22543d; }
        .badge-medium { background: #fefcbf; color: #744210; }
        .badge-low { background: #fed7d7; color: #742a2a; }

        .warning {
            background: #fffaf0;
            border-left: 4px solid #ed8936;
            padding: 12px 15px;
            margin-bottom: 10px;
            border-radius: 6px;
            color: #744210;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <p>Generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}} &middot; {{.ExamplesCount}} examples &middot; threshold {{printf "%.2f" .Threshold}}</p>
        </div>

        <div class="stats-grid">
            <div class="stat-card"><h3>Included Patterns</h3><div class="value">{{len .Included}}</div></div>
            <div class="stat-card"><h3>Excluded Patterns</h3><div class="value">{{len .Excluded}}</div></div>
            <div class="stat-card"><h3>Unresolved Targets</h3><div class="value">{{len .Unresolved}}</div></div>
            <div class="stat-card"><h3>High Confidence</h3><div class="value">{{len .High}}</div></div>
        </div>

        <div class="section">
            <h2>Included Patterns</h2>
            <table>
                <tr><th>Target</th><th>Type</th><th>Sources</th><th>Confidence</th><th>Description</th></tr>
                {{range .Included}}
                <tr>
                    <td>{{.TargetPath}}</td>
                    <td>{{.Type}}</td>
                    <td>{{range $i, $s := .SourcePaths}}{{if $i}}, {{end}}{{$s}}{{end}}</td>
                    <td><span class="badge {{if ge .Confidence 0.9}}badge-high{{else if ge .Confidence 0.7}}badge-medium{{else}}badge-low{{end}}">{{.ConfidencePercent}}</span></td>
                    <td>{{.Description}}</td>
                </tr>
                {{end}}
            </table>
        </div>

        {{if .Excluded}}
        <div class="section">
            <h2>Excluded Patterns</h2>
            <table>
                <tr><th>Target</th><th>Type</th><th>Confidence</th><th>Description</th></tr>
                {{range .Excluded}}
                <tr>
                    <td>{{.TargetPath}}</td>
                    <td>{{.Type}}</td>
                    <td><span class="badge badge-low">{{.ConfidencePercent}}</span></td>
                    <td>{{.Description}}</td>
                </tr>
                {{end}}
            </table>
        </div>
        {{end}}

        {{if .Unresolved}}
        <div class="section">
            <h2>Unresolved Targets</h2>
            <table>
                <tr><th>Target Path</th></tr>
                {{range .Unresolved}}<tr><td>{{.}}</td></tr>{{end}}
            </table>
        </div>
        {{end}}

        {{if .Warnings}}
        <div class="section">
            <h2>Warnings</h2>
            {{range .Warnings}}<div class="warning">{{.}}</div>{{end}}
        </div>
        {{end}}
    </div>
</body>
</html>
`
