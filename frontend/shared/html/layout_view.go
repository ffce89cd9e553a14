package html

import "fmt"

// RenderLayout wraps a page body with the shared head and scripts.
func RenderLayout(title, body string) string {
	return fmt.Sprintf("<!doctype html><html><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>%s</title><link rel=\"stylesheet\" href=\"/assets/app.css\"></head><body>%s%s%s</body></html>", title, body, NotificationScript(), CSRFFormScript())
}

// NotificationScript hides a shown notification after its data-dismiss-ms delay.
func NotificationScript() string {
	return `<script>
(function () {
  var el = document.getElementById("notification");
  if (!el) return;
  var ms = parseInt(el.getAttribute("data-dismiss-ms"), 10);
  if (!(ms > 0)) return;
  setTimeout(function () { el.classList.remove("show"); }, ms);
})();
</script>`
}
