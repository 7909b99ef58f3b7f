package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reviewqr/reviewqr/internal/model"
	"github.com/reviewqr/reviewqr/internal/service"
)

// PageHandler serves the server-rendered HTML pages: the landing page,
// the owner dashboard shell and the public rating page opened by a
// scanned QR code.
type PageHandler struct {
	businesses *service.BusinessService
	logger     *slog.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(businesses *service.BusinessService, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		businesses: businesses,
		logger:     logger,
	}
}

// Landing handles GET /. The session gate redirects logged-in owners
// to the dashboard before this runs.
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	renderPage(w, landingTemplate, nil)
}

// Dashboard handles GET /dashboard. The page shell loads businesses
// and feedback through the JSON API with the session cookie.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	renderPage(w, dashboardTemplate, nil)
}

// feedbackPageData feeds the rating page template.
type feedbackPageData struct {
	BusinessID      string
	BusinessName    string
	GoogleReviewURL string
	RedirectMin     int
}

// FeedbackPage handles GET /r/{qrId}, the page a scanned code opens.
func (h *PageHandler) FeedbackPage(w http.ResponseWriter, r *http.Request) {
	qrCodeID := chi.URLParam(r, "qrId")

	business, err := h.businesses.GetByQRCodeID(r.Context(), qrCodeID)
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			_ = notFoundTemplate.Execute(w, nil)
			return
		}
		h.logger.Error("feedback_page_failed", "error", err)
		http.Error(w, "An internal error occurred", http.StatusInternalServerError)
		return
	}

	renderPage(w, feedbackTemplate, feedbackPageData{
		BusinessID:      business.ID,
		BusinessName:    business.BusinessName,
		GoogleReviewURL: business.GoogleReviewURL,
		RedirectMin:     model.ReviewRedirectThreshold,
	})
}

func renderPage(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = tmpl.Execute(w, data)
}

var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>ReviewQR</title>
</head>
<body>
<main>
<h1>ReviewQR</h1>
<p>Collect customer feedback with a QR code. Happy customers go straight to your Google review page.</p>
<section>
<h2>Sign up</h2>
<form id="signup-form">
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" minlength="6" required></label>
<button type="submit">Create account</button>
</form>
<h2>Log in</h2>
<form id="login-form">
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Log in</button>
</form>
<p id="error" role="alert"></p>
</section>
</main>
<script>
function bind(formId, endpoint) {
  document.getElementById(formId).addEventListener('submit', async function (event) {
    event.preventDefault();
    const data = Object.fromEntries(new FormData(event.target));
    const res = await fetch(endpoint, {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(data)
    });
    const body = await res.json();
    if (res.ok) {
      window.location.href = body.redirectUrl;
    } else {
      document.getElementById('error').textContent = body.error;
    }
  });
}
bind('signup-form', '/auth/signup');
bind('login-form', '/auth/login');
</script>
</body>
</html>
`))

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Dashboard - ReviewQR</title>
</head>
<body>
<main>
<h1>Your businesses</h1>
<form id="create-form">
<label>Business name <input type="text" name="businessName" required></label>
<label>Google review URL <input type="url" name="googleReviewUrl" required></label>
<button type="submit">Add business</button>
</form>
<p id="error" role="alert"></p>
<ul id="businesses"></ul>
<form id="logout-form"><button type="submit">Log out</button></form>
</main>
<script>
async function load() {
  const res = await fetch('/api/business');
  if (res.status === 401) { window.location.href = '/'; return; }
  const body = await res.json();
  const list = document.getElementById('businesses');
  list.textContent = '';
  for (const biz of body.businesses) {
    const item = document.createElement('li');
    const name = document.createElement('strong');
    name.textContent = biz.businessName;
    item.appendChild(name);
    const qr = document.createElement('img');
    qr.alt = 'QR code for ' + biz.businessName;
    item.appendChild(qr);
    const feedback = document.createElement('ul');
    item.appendChild(feedback);
    list.appendChild(item);
    fetch('/api/qr?id=' + encodeURIComponent(biz.qrCodeId))
      .then(function (r) { return r.json(); })
      .then(function (b) { qr.src = b.qrCode; });
    fetch('/api/feedback?businessId=' + encodeURIComponent(biz.id))
      .then(function (r) { return r.json(); })
      .then(function (b) {
        for (const entry of b.feedback) {
          const row = document.createElement('li');
          row.textContent = entry.rating + ' stars' + (entry.feedbackText ? ': ' + entry.feedbackText : '');
          feedback.appendChild(row);
        }
      });
  }
}
document.getElementById('create-form').addEventListener('submit', async function (event) {
  event.preventDefault();
  const data = Object.fromEntries(new FormData(event.target));
  const res = await fetch('/api/business', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify(data)
  });
  if (res.ok) { event.target.reset(); load(); return; }
  const body = await res.json();
  document.getElementById('error').textContent = body.error;
});
document.getElementById('logout-form').addEventListener('submit', async function (event) {
  event.preventDefault();
  await fetch('/auth/logout', {method: 'POST'});
  window.location.href = '/';
});
load();
</script>
</body>
</html>
`))

var feedbackTemplate = template.Must(template.New("feedback").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.BusinessName}} - How was your visit?</title>
</head>
<body>
<main>
<h1>How was your visit to {{.BusinessName}}?</h1>
<div id="stars">
<button data-rating="1">1</button>
<button data-rating="2">2</button>
<button data-rating="3">3</button>
<button data-rating="4">4</button>
<button data-rating="5">5</button>
</div>
<form id="text-form" hidden>
<p>Sorry to hear that. What could we do better?</p>
<textarea name="feedbackText" rows="4"></textarea>
<button type="submit">Send feedback</button>
</form>
<p id="thanks" hidden>Thank you for your feedback.</p>
</main>
<script>
const businessId = {{.BusinessID}};
const reviewUrl = {{.GoogleReviewURL}};
const redirectMin = {{.RedirectMin}};
let chosenRating = 0;

async function submitFeedback(rating, text) {
  await fetch('/api/feedback', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({businessId: businessId, rating: rating, feedbackText: text})
  });
}

document.getElementById('stars').addEventListener('click', async function (event) {
  const button = event.target.closest('button');
  if (!button) return;
  chosenRating = parseInt(button.dataset.rating, 10);
  if (chosenRating >= redirectMin) {
    await submitFeedback(chosenRating, '');
    window.location.href = reviewUrl;
    return;
  }
  document.getElementById('stars').hidden = true;
  document.getElementById('text-form').hidden = false;
});

document.getElementById('text-form').addEventListener('submit', async function (event) {
  event.preventDefault();
  const text = new FormData(event.target).get('feedbackText');
  await submitFeedback(chosenRating, text);
  event.target.hidden = true;
  document.getElementById('thanks').hidden = false;
});
</script>
</body>
</html>
`))

var notFoundTemplate = template.Must(template.New("notfound").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Not found</title>
</head>
<body>
<main>
<h1>This QR code is not active</h1>
<p>The business you are looking for could not be found.</p>
</main>
</body>
</html>
`))
