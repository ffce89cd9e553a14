package html

import "watchlist/infrastructure/session"

const CSRFCookieName = session.CSRFCookieName

// CSRFFormScript copies the CSRF cookie into a hidden _csrf field of every POST form.
func CSRFFormScript() string {
	return `<script>
(function () {
  function readCookie(name) {
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf(name + "=") === 0) return decodeURIComponent(c.substring(name.length + 1));
    }
    return "";
  }
  var token = readCookie("` + CSRFCookieName + `");
  if (!token) return;
  var forms = document.querySelectorAll("form[method='post']");
  for (var i = 0; i < forms.length; i++) {
    if (forms[i].querySelector("input[name='_csrf']")) continue;
    var input = document.createElement("input");
    input.type = "hidden";
    input.name = "_csrf";
    input.value = token;
    forms[i].appendChild(input);
  }
})();
</script>`
}
