package export

const markupTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta name="generator" content="{{ generator }}">
    <title>{{ esc .Title }}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
        .header { background-color: #002060; color: white; padding: 20px; display: flex; justify-content: space-between; align-items: center; }
        .logo { height: 64px; }
        .title-bar { background-color: #f2f2f2; padding: 15px; }
        .content { display: flex; max-width: 1200px; margin: 0 auto; }
        .main { flex: 1; padding: 20px; }
        .hero { display: flex; gap: 24px; margin-bottom: 30px; }
        .hero-icon { width: 80px; height: 80px; }
        .sidebar { width: 300px; background-color: #f2f2f2; padding: 20px; }
        .section { margin-bottom: 30px; border: 1px solid #ddd; border-radius: 5px; }
        .section-header { background-color: #002060; color: white; padding: 10px; }
        .section-content { padding: 20px; }
        .resource { margin-bottom: 15px; }
        .resource-description { font-size: 12px; color: #666; }
        .resource-url { font-size: 11px; color: #1a73e8; }
        .footer { background-color: #f2f2f2; text-align: center; padding: 15px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{ esc .Header.Title }}</h1>
{{- if .Header.LogoURL }}
        <img class="logo" src="{{ esc .Header.LogoURL }}" alt="Company Logo">
{{- end }}
    </div>

    <div class="title-bar">
        <h2>{{ esc .Title }}</h2>
    </div>

    <div class="content">
        <div class="main">
            <div class="hero">
{{- if .Hero.IconURL }}
                <img class="hero-icon" src="{{ esc .Hero.IconURL }}" alt="Hero Icon">
{{- end }}
                <div>
                    <h3>{{ esc .Hero.Title }}</h3>
                    <p>{{ esc .Hero.Content }}</p>
                </div>
            </div>
{{- range .ContentBlocks }}
            <div class="section" data-id="{{ esc .ID }}">
                <div class="section-header">
                    <h4>{{ esc .Title }}</h4>
                </div>
                <div class="section-content">
                    <p>{{ esc .Content }}</p>
{{- if .ImageURL }}
                    <img src="{{ esc .ImageURL }}" alt="{{ esc .Title }}" style="max-width: 100%;">
{{- end }}
                </div>
            </div>
{{- end }}
        </div>

        <div class="sidebar">
            <h4>Useful Resources</h4>
{{- range .Resources }}
            <div class="resource" data-id="{{ esc .ID }}">
                <h5><a href="{{ esc .URL }}">{{ esc .Title }}</a></h5>
                <p class="resource-description">{{ esc .Description }}</p>
                <span class="resource-url">{{ esc .URL }}</span>
            </div>
{{- end }}
        </div>
    </div>

    <div class="footer">
        <p>{{ esc .Footer.Text }}</p>
    </div>
</body>
</html>
`

const structuredTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<newsletter>
    <header>
        <title>{{ esc .Header.Title }}</title>
        <logo>{{ esc .Header.LogoURL }}</logo>
    </header>
    <title>{{ esc .Title }}</title>
    <hero>
        <title>{{ esc .Hero.Title }}</title>
        <content>{{ esc .Hero.Content }}</content>
        <icon>{{ esc .Hero.IconURL }}</icon>
    </hero>
    <content-blocks>
{{- range .ContentBlocks }}
        <block id="{{ esc .ID }}">
            <title>{{ esc .Title }}</title>
            <content>{{ esc .Content }}</content>
{{- if .ImageURL }}
            <image>{{ esc .ImageURL }}</image>
{{- end }}
        </block>
{{- end }}
    </content-blocks>
    <resources>
{{- range .Resources }}
        <resource id="{{ esc .ID }}">
            <title>{{ esc .Title }}</title>
            <description>{{ esc .Description }}</description>
            <url>{{ esc .URL }}</url>
        </resource>
{{- end }}
    </resources>
    <footer>
        <text>{{ esc .Footer.Text }}</text>
    </footer>
</newsletter>
`
