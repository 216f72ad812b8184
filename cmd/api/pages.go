package main

import (
	"html/template"
	"net/http"
)

const pageStyle = `
    body { font-family: -apple-system, system-ui, Segoe UI, Roboto, Arial; padding: 24px; }
    .box { max-width: 480px; margin: 40px auto; border: 1px solid #ddd; border-radius: 12px; padding: 24px; }
    label { display: block; font-size: 14px; margin: 12px 0 4px; }
    input { width: 100%; padding: 8px; box-sizing: border-box; }
    button { width: 100%; margin-top: 16px; padding: 10px; background: #111; color: #fff; border: 0; border-radius: 6px; }
    button:disabled { opacity: 0.6; }
    .error { color: #c00; font-size: 14px; }
    .muted { color: #666; font-size: 12px; }
    .mono { font-family: ui-monospace, Menlo, monospace; }
    pre { max-height: 320px; overflow: auto; background: #f3f3f3; padding: 8px; }`

var homePage = template.Must(template.New("home").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>PayPay Web Payment Sandbox Test</title>
  <style>{{.Style}}</style>
</head>
<body>
  <div class="box">
    <h2>PayPay Web Payment Sandbox Test</h2>
    <form id="f">
      <label for="amount">Amount (JPY)</label>
      <input id="amount" name="amount" type="number" min="1" step="1" value="{{.Amount}}" />
      <label for="description">Description</label>
      <input id="description" name="description" type="text" maxlength="255" value="{{.Description}}" />
      <button id="submit" type="submit">Create PayPay payment</button>
    </form>
    <p id="error" class="error" hidden></p>
    <p class="muted">This uses PayPay sandbox Web Cashier. You need the PayPay app or a sandbox account to complete the flow.</p>
  </div>

  <script>
    (function () {
      var form = document.getElementById('f');
      var button = document.getElementById('submit');
      var errorBox = document.getElementById('error');

      function fail(msg) {
        errorBox.textContent = 'Error. ' + msg;
        errorBox.hidden = false;
        button.disabled = false;
        button.textContent = 'Create PayPay payment';
      }

      form.addEventListener('submit', function (e) {
        e.preventDefault();
        errorBox.hidden = true;
        button.disabled = true;
        button.textContent = 'Creating payment...';

        fetch({{.CreateURL}}, {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify({
            amount: Number(form.amount.value),
            description: form.description.value
          })
        })
          .then(function (res) { return res.json().then(function (data) { return { ok: res.ok, data: data }; }); })
          .then(function (r) {
            if (!r.ok) {
              console.error('Create payment failed', r.data);
              return fail((r.data && r.data.error) || 'Failed to create payment. See console.');
            }
            var d = r.data || {};
            var inner = (d.body && d.body.data) || {};
            var url = d.paymentUrl || inner.url || inner.link;
            if (!url) {
              console.error('No URL in PayPay response', d);
              return fail('No payment URL returned by PayPay');
            }
            window.location.href = url;
          })
          .catch(function (err) {
            console.error(err);
            fail((err && err.message) || 'Unexpected error');
          });
      });
    })();
  </script>
</body>
</html>`))

var resultPage = template.Must(template.New("result").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>PayPay Payment Result</title>
  <style>{{.Style}}</style>
</head>
<body>
  <div class="box">
    <h2>PayPay Payment Result</h2>
    <p class="muted">merchantPaymentId. <span class="mono">{{.MerchantPaymentID}}</span></p>

    <p id="loading">Checking payment status...</p>
    <p id="error" class="error" hidden></p>
    <div id="result" hidden>
      <p>PayPay HTTP status. <span id="http-status" class="mono"></span></p>
      <p>Payment state. <span id="state" class="mono"></span></p>
      <details>
        <summary>Raw PayPay response</summary>
        <pre id="raw"></pre>
      </details>
    </div>

    <p><a href="/">Back to home</a></p>
  </div>

  <script>
    (function () {
      var id = {{.MerchantPaymentID}};
      var loading = document.getElementById('loading');
      var errorBox = document.getElementById('error');

      function fail(msg) {
        loading.hidden = true;
        errorBox.textContent = 'Error. ' + msg;
        errorBox.hidden = false;
      }

      if (!id) {
        return fail('merchantPaymentId missing in query');
      }

      fetch({{.StatusURL}} + '?merchantPaymentId=' + encodeURIComponent(id))
        .then(function (res) { return res.json().then(function (data) { return { ok: res.ok, data: data }; }); })
        .then(function (r) {
          if (!r.ok) {
            console.error('Status check failed', r.data);
            return fail((r.data && r.data.error) || 'Failed to fetch payment status. See console.');
          }
          var d = r.data || {};
          var inner = (d.body && d.body.data) || {};
          loading.hidden = true;
          document.getElementById('http-status').textContent = d.payPayStatus;
          document.getElementById('state').textContent = d.paymentState || inner.status || inner.state || '';
          document.getElementById('raw').textContent = JSON.stringify(d.body, null, 2);
          document.getElementById('result').hidden = false;
        })
        .catch(function (err) {
          console.error(err);
          fail((err && err.message) || 'Unexpected error');
        });
    })();
  </script>
</body>
</html>`))

func (app *application) renderPage(w http.ResponseWriter, r *http.Request, t *template.Template, data map[string]any) {
	data["Style"] = template.CSS(pageStyle)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "no-referrer")

	if err := t.Execute(w, data); err != nil {
		app.logger.Errorw("render page", "path", r.URL.Path, "error", err.Error())
	}
}

// GET /
func (app *application) homePageHandler(w http.ResponseWriter, r *http.Request) {
	app.renderPage(w, r, homePage, map[string]any{
		"Amount":      defaultAmount,
		"Description": "Sandbox test order",
		"CreateURL":   "/api/paypay/create",
	})
}

// GET /paypay/result?merchantPaymentId=...
// PayPay sends the browser here after checkout.
func (app *application) resultPageHandler(w http.ResponseWriter, r *http.Request) {
	app.renderPage(w, r, resultPage, map[string]any{
		"MerchantPaymentID": r.URL.Query().Get("merchantPaymentId"),
		"StatusURL":         "/api/paypay/status",
	})
}
