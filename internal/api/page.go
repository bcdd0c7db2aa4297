package api

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Natural Disaster Visualization (1900-2023)</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.heat@0.2.0/dist/leaflet-heat.js"></script>
<style>
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
body{font-family:Arial,Helvetica,sans-serif;background:#ffffff;color:#2c3e50;line-height:1.5}
h1{text-align:center;font-size:2.5em;margin:20px 0 30px}
.panel{width:80%;margin:0 auto 20px;padding:20px;background:#f8f9fa;border-radius:10px;box-shadow:0 2px 4px rgba(0,0,0,0.1)}
.panel label{font-size:1.2em;display:block;margin-bottom:10px}
.panel input[type=range]{width:100%}
.panel select{width:100%;padding:6px;font-size:1em;margin-top:10px}
.year-value{font-weight:bold}
#stats{width:80%;margin:0 auto 20px;padding:15px;background:#f8f9fa;border-radius:10px;box-shadow:0 2px 4px rgba(0,0,0,0.1);text-align:center}
#stats h3,#stats h4{color:#2c3e50}
#stats p{font-size:1.1em}
#map-wrap{width:90%;margin:0 auto 40px;padding:15px;background:#fff;border-radius:10px;box-shadow:0 2px 4px rgba(0,0,0,0.1)}
#map{height:70vh;border-radius:6px}
</style>
</head>
<body>
<h1>Natural Disaster Visualization (1900-2023)</h1>

<div class="panel">
  <label>Select Year: <span class="year-value" id="year-value"></span></label>
  <input type="range" id="year-slider" step="1">
  <label for="type-select">Select Disaster Type:</label>
  <select id="type-select"></select>
</div>

<div id="stats"></div>

<div id="map-wrap"><div id="map"></div></div>

<script>
const map = L.map('map');
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

let overlay = null;       // current heat or marker layer
let applyingView = false; // suppress moveend while we position the map

const slider = document.getElementById('year-slider');
const yearValue = document.getElementById('year-value');
const typeSelect = document.getElementById('type-select');
const statsPanel = document.getElementById('stats');

function fmt(n, digits) {
  return Number(n).toLocaleString('en-US', {
    minimumFractionDigits: digits, maximumFractionDigits: digits
  });
}

async function refresh(params) {
  const qs = new URLSearchParams({year: slider.value, type: typeSelect.value, ...params});
  const resp = await fetch('/api/view?' + qs);
  if (!resp.ok) return;
  const body = await resp.json();
  render(body);
}

function render(body) {
  const desc = body.map;

  applyingView = true;
  map.setView([desc.center.lat, desc.center.lon], desc.zoom, {animate: false});
  applyingView = false;

  if (overlay) { map.removeLayer(overlay); overlay = null; }

  if (desc.mode === 'density') {
    overlay = L.heatLayer(desc.points.map(p => [p.lat, p.lon]), {radius: desc.radius});
  } else {
    const markers = desc.points.map(p => {
      const m = L.circleMarker([p.lat, p.lon], {
        radius: Math.max(p.size || 4, 4),
        fillOpacity: desc.opacity || 0.7,
        stroke: false,
        fillColor: '#e74c3c'
      });
      if (p.location) {
        m.bindPopup('<b>' + p.location + '</b><br>Deaths: ' + fmt(p.deaths, 0) +
          '<br>Damage: ' + fmt(p.damage, 2) + " ('000 US$)");
      }
      return m;
    });
    overlay = L.layerGroup(markers);
  }
  overlay.addTo(map);

  statsPanel.innerHTML =
    '<h3>Year: ' + slider.value + '</h3>' +
    '<h4>Disaster Type: ' + typeSelect.value + '</h4>' +
    '<p><strong>Total Events: </strong>' + fmt(body.stats.total_events, 0) +
    '<br><strong>Total Deaths: </strong>' + fmt(body.stats.total_deaths, 0) +
    "<br><strong>Total Damage ('000 US$): </strong>" + fmt(body.stats.total_damage, 2) + '</p>';
}

map.on('moveend zoomend', () => {
  if (applyingView) return;
  const c = map.getCenter();
  refresh({zoom: map.getZoom(), lat: c.lat, lon: c.lng});
});

slider.addEventListener('input', () => { yearValue.textContent = slider.value; });
slider.addEventListener('change', () => refresh({}));
typeSelect.addEventListener('change', () => refresh({}));

async function init() {
  const meta = await (await fetch('/api/meta')).json();

  slider.min = meta.year_min;
  slider.max = meta.year_max;
  slider.value = meta.year_max;
  yearValue.textContent = slider.value;

  for (const t of meta.types) {
    const opt = document.createElement('option');
    opt.value = t;
    opt.textContent = t;
    typeSelect.appendChild(opt);
  }
  if (meta.types.includes('Earthquake')) typeSelect.value = 'Earthquake';

  refresh({});
}

init();
</script>
</body>
</html>
`
