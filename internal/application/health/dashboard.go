package health

import (
	"bytes"
	"html/template"
)

var dashboardTmpl = template.Must(template.New("status").Funcs(template.FuncMap{
	"healthy": func(d DepStatus) bool { return d.Healthy() },
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <title>EasyLease Admin · Estado</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
    :root { --brand: #2563eb; --dark: #111827; --muted: #6b7280; --ok: #16a34a; --err: #dc2626; --bg: #f3f4f6; }
    * { box-sizing: border-box; }
    body { margin: 0; font-family: system-ui, sans-serif; background: var(--bg); color: var(--dark); display: flex; justify-content: center; padding: 48px 16px; }
    .wrap { width: 100%; max-width: 1000px; }
    h1 { margin: 0 0 6px; font-size: 36px; letter-spacing: -1px; }
    h1.issue { color: var(--err); }
    .sub { color: var(--muted); margin: 0 0 28px; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; }
    .card { background: #fff; border-radius: 16px; padding: 28px; box-shadow: 0 10px 30px rgba(0,0,0,0.05); }
    .label { text-transform: uppercase; font-size: 11px; font-weight: 800; letter-spacing: 2px; color: #9ca3af; margin-bottom: 18px; }
    .big { font-size: 36px; font-weight: 800; margin-bottom: 10px; }
    .row { display: flex; justify-content: space-between; padding: 7px 0; border-bottom: 1px solid #f3f4f6; font-size: 14px; }
    .row:last-child { border-bottom: none; }
    .pill { font-size: 11px; font-weight: 800; padding: 3px 10px; border-radius: 8px; }
    .ok { background: #dcfce7; color: var(--ok); }
    .err { background: #fee2e2; color: var(--err); }
    .last { margin-top: 16px; font-family: monospace; font-size: 13px; display: flex; justify-content: space-between; }
    .actions { margin-top: 24px; display: flex; gap: 12px; align-items: center; color: var(--muted); font-size: 13px; }
    button { background: var(--brand); color: #fff; border: none; border-radius: 8px; padding: 8px 16px; cursor: pointer; font-weight: 700; }
    #errors { margin-top: 16px; display: none; }
    .error-item { border-bottom: 1px solid #e5e7eb; padding: 10px 0; font-size: 13px; }
    .error-item b { color: var(--err); }
    @media (max-width: 800px) { .grid { grid-template-columns: 1fr; } }
  </style>
</head>
<body>
  <div class="wrap">
    <h1 id="headline"{{if ne .Status "ok"}} class="issue"{{end}}>{{if eq .Status "ok"}}Todos los sistemas operativos{{else}}Se detectaron incidencias{{end}}</h1>
    <p class="sub">Panel de administración EasyLease · API, Redis y sitio público.</p>
    <div class="grid">
      <div class="card">
        <div class="label">Tráfico</div>
        <div class="big" id="total-req">{{.Traffic.TotalRequests}}</div>
        <div class="row"><span>Correctas</span><span id="success-count">{{.Traffic.SuccessCount}}</span></div>
        <div class="row"><span>Fallidas</span><span id="failed-count">{{.Traffic.FailedCount}}</span></div>
        <div class="row"><span>Tasa de éxito</span><span id="success-rate">{{.Traffic.SuccessRate}}%</span></div>
        <div class="row"><span>Latencia media</span><span id="avg-time">{{.Traffic.AvgResponseTime}}ms</span></div>
      </div>
      <div class="card">
        <div class="label">Proceso</div>
        <div class="big" id="uptime">{{.Runtime.UptimeSeconds}}s</div>
        <div class="row"><span>Heap</span><span>{{.Runtime.Memory.HeapUsed}} MB</span></div>
        <div class="row"><span>Goroutines</span><span>{{.Runtime.Goroutines}}</span></div>
        <div class="row"><span>Plataforma</span><span>{{.Runtime.Platform}}</span></div>
        <div class="row"><span>Go</span><span>{{.Runtime.GoVersion}}</span></div>
      </div>
      <div class="card">
        <div class="label">Dependencias</div>
        {{range $name, $dep := .Dependencies}}
        <div class="row"><span>{{$name}}</span><span class="pill {{if healthy $dep}}ok{{else}}err{{end}}">{{$dep.Status}}{{with $dep.PingMs}} · {{.}} ms{{end}}</span></div>
        {{end}}
      </div>
    </div>
    {{with .Traffic.LastRequest}}
    <div class="card last"><span>ÚLTIMA PETICIÓN {{.Method}}</span><span>{{.Path}}</span><span>{{.IP}}</span></div>
    {{end}}
    <div class="actions">
      <button onclick="toggleErrors()">Ver registro de errores</button>
      <span>Datos en <a href="/health/json">/health/json</a></span>
    </div>
    <div id="errors" class="card"></div>
  </div>
  <script>
    const snapshot = {{.}};
    async function toggleErrors() {
      const box = document.getElementById('errors');
      if (box.style.display === 'block') { box.style.display = 'none'; return; }
      box.style.display = 'block';
      box.textContent = 'Cargando...';
      try {
        const r = await fetch('/health/errors');
        const list = await r.json();
        box.textContent = '';
        if (list.length === 0) { box.textContent = 'Sin errores registrados.'; return; }
        for (const e of list) {
          const item = document.createElement('div');
          item.className = 'error-item';
          item.textContent = new Date(e.time).toLocaleString() + ' ' + (e.method || '') + ' ' + (e.path || '') + ' ' + (e.message || '');
          box.appendChild(item);
        }
      } catch (err) { box.textContent = 'No se pudo cargar el registro.'; }
    }
    setInterval(async () => {
      try {
        const d = await (await fetch('/health/json')).json();
        document.getElementById('total-req').textContent = d.traffic.totalRequests;
        document.getElementById('success-count').textContent = d.traffic.successCount;
        document.getElementById('failed-count').textContent = d.traffic.failedCount;
        document.getElementById('success-rate').textContent = d.traffic.successRate + '%';
        document.getElementById('avg-time').textContent = d.traffic.avgResponseTime + 'ms';
        document.getElementById('uptime').textContent = d.runtime.uptimeSeconds + 's';
      } catch (err) {}
    }, 10000);
    console.debug('health snapshot', snapshot.status);
  </script>
</body>
</html>`))

// RenderDashboardHTML renders the status page served at /health.
func RenderDashboardHTML(health CollectResult) (string, error) {
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, health); err != nil {
		return "", err
	}
	return buf.String(), nil
}
