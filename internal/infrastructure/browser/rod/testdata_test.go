package rod

// TestHTML templates for testing
const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Hello World</h1>
</body>
</html>`

	InteractiveHTML = `<!DOCTYPE html>
<html>
<body>
	<button id="btn">Click Me</button>
	<div id="result"></div>
	<script>
		document.getElementById('btn').addEventListener('click', function() {
			document.getElementById('result').textContent = 'Clicked!';
		});
	</script>
</body>
</html>`

	VisibilityHTML = `<!DOCTYPE html>
<html>
<head><style>.hidden { display: none; }</style></head>
<body>
	<div id="shown">Shown</div>
	<div id="gone" class="hidden">Gone</div>
	<div id="invisible" style="visibility: hidden">Invisible</div>
	<div id="later" class="hidden">Later</div>
	<div id="loading">Loading...</div>
	<div id="collapsed" style="position: fixed; top: 100px; left: 100px; width: 0; height: 0; overflow: hidden">Collapsed</div>
	<div id="flat" style="width: 600px; height: 0; overflow: hidden">Flat</div>
	<script>
		setTimeout(function() {
			document.getElementById('later').classList.remove('hidden');
			document.getElementById('loading').classList.add('hidden');
		}, 300);
	</script>
</body>
</html>`

	// OffscreenHTML has a trigger a real mouse click cannot reach.
	OffscreenHTML = `<!DOCTYPE html>
<html>
<head><style>.hidden { display: none; }</style></head>
<body>
	<div style="position: absolute; left: -9999px; top: -9999px;">
		<button id="trigger">Open</button>
	</div>
	<div id="modal" class="hidden">Modal</div>
	<script>
		document.getElementById('trigger').addEventListener('click', function() {
			document.getElementById('modal').classList.remove('hidden');
		});
	</script>
</body>
</html>`

	KeyboardHTML = `<!DOCTYPE html>
<html>
<head><style>.hidden { display: none; }</style></head>
<body>
	<div id="panel" class="hidden">Panel</div>
	<script>
		document.addEventListener('keydown', function(e) {
			if (e.key === '` + "`" + `') {
				document.getElementById('panel').classList.toggle('hidden');
			}
		});
	</script>
</body>
</html>`

	ScrollableHTML = `<!DOCTYPE html>
<html>
<body style="height: 5000px;">
	<h1 id="top">Top of Page</h1>
	<div style="margin-top: 2000px;" id="middle">Middle</div>
	<div style="margin-top: 2000px;" id="bottom">Bottom</div>
</body>
</html>`
)
