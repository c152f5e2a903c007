package site

// pageTemplate is the html/template shared by every page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteTitle}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <nav class="navigation">
    <ul>
      {{range .Items}}<li class="{{.Classes}}" id="{{.ID}}"><a href="{{.Path}}">{{.Label}}</a></li>
      {{end}}
    </ul>
  </nav>
  <main class="content">
    <article class="page-content">
      {{.Body}}
    </article>
  </main>
  <script src="/static/navmark.js"></script>
</body>
</html>`

const homeTemplate = `<h1>{{.SiteTitle}}</h1>
<p>Pick a section from the navigation bar.</p>
{{if .Selection}}<p class="selection">Last selected item: <strong>{{.Selection}}</strong></p>{{end}}`

const historyTemplate = `<h1>History</h1>
{{if .History}}
<table class="history">
  <thead><tr><th>When</th><th>Item</th><th>Trigger</th><th>Path</th></tr></thead>
  <tbody>
  {{range .History}}<tr><td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td><td>{{.ItemID}}</td><td>{{.Trigger}}</td><td>{{.Path}}</td></tr>
  {{end}}
  </tbody>
</table>
{{else}}
<p>No activations recorded yet.</p>
{{end}}`

const settingsTemplate = `<h1>Settings</h1>
<dl class="settings">
  <dt>Client</dt><dd><code>{{.ClientID}}</code></dd>
  <dt>Storage key</dt><dd><code>{{.StorageKey}}</code></dd>
  <dt>Stored selection</dt><dd>{{if .Selection}}<code>{{.Selection}}</code>{{else}}none{{end}}</dd>
</dl>
<form method="post" action="/settings/forget">
  <button type="submit">Forget my selection</button>
</form>`

const sectionTemplate = `<h1>{{.Title}}</h1>
<p>This section has no content yet.</p>`

const notFoundTemplate = `<h1>Not found</h1>
<p>No page lives at <code>{{.Path}}</code>.</p>`

// cssContent styles the navigation bar and its two markers.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-nav: #f1f3f5;
  --text: #212529;
  --text-muted: #868e96;
  --accent: #228be6;
  --accent-light: #e7f5ff;
  --border: #dee2e6;
}
* { box-sizing: border-box; }
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; color: var(--text); background: var(--bg); }
.navigation { background: var(--bg-nav); border-bottom: 1px solid var(--border); }
.navigation ul { display: flex; gap: 4px; margin: 0 auto; padding: 8px 16px; list-style: none; max-width: 900px; }
.navigation .list { border-radius: 6px; transition: background 0.2s; }
.navigation .list a { display: block; padding: 8px 14px; color: var(--text-muted); text-decoration: none; }
.navigation .list.active { background: var(--accent-light); }
.navigation .list.active a { color: var(--accent); font-weight: 600; }
.navigation .list.stopped { box-shadow: inset 0 -2px 0 var(--accent); }
.content { max-width: 900px; margin: 0 auto; padding: 24px 16px; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid var(--border); padding: 6px 8px; text-align: left; }
pre { padding: 12px; border-radius: 6px; overflow-x: auto; }
`

// jsContent posts clicks to the API and replays clicks made in this
// client's other tabs.
const jsContent = `(function () {
  "use strict";

  var list = document.querySelectorAll(".list");

  function apply(snapshot) {
    if (!snapshot || !snapshot.items) { return; }
    snapshot.items.forEach(function (it) {
      var el = document.getElementById(it.id);
      if (!el) { return; }
      el.classList.toggle("active", it.active);
      el.classList.toggle("stopped", it.stopped);
    });
  }

  function markActive(item) {
    list.forEach(function (el) { el.classList.remove("active"); });
    item.classList.add("active");
  }

  function activeLink() {
    var item = this;
    markActive(item);
    fetch("/api/nav/activate", {
      method: "POST",
      credentials: "same-origin",
      keepalive: true,
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ id: item.id, path: window.location.pathname })
    }).then(function (r) { return r.ok ? r.json() : null; })
      .then(apply)
      .catch(function () {});
  }

  list.forEach(function (item) { item.addEventListener("click", activeLink); });

  if ("WebSocket" in window) {
    var proto = window.location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + window.location.host + "/api/nav/ws");
    ws.onmessage = function (ev) {
      var msg;
      try { msg = JSON.parse(ev.data); } catch (e) { return; }
      if (msg.type !== "click") { return; }
      var el = document.getElementById(msg.id);
      if (el) { markActive(el); }
    };
  }
})();
`
