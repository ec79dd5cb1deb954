package auth_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/simplefinance/simplefinance/internal/auth"
)

var _ = Describe("SessionManager", func() {
	var (
		manager *auth.SessionManager
		actor   *auth.Actor
	)

	BeforeEach(func() {
		manager = auth.NewSessionManager("test-secret-0123456789-test-secret", time.Hour, false)
		actor = &auth.Actor{ID: 7, Username: "maria", Role: auth.RoleStandard}
	})

	requestWithCookie := func(rec *httptest.ResponseRecorder) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}
		return req
	}

	Describe("Establish and Current", func() {
		It("round-trips the actor through the cookie", func() {
			rec := httptest.NewRecorder()
			Expect(manager.Establish(rec, actor)).To(Succeed())

			current := manager.Current(requestWithCookie(rec))
			Expect(current).ToNot(BeNil())
			Expect(current.ID).To(Equal(actor.ID))
			Expect(current.Username).To(Equal(actor.Username))
			Expect(current.Role).To(Equal(actor.Role))
		})

		It("marks the cookie HttpOnly", func() {
			rec := httptest.NewRecorder()
			Expect(manager.Establish(rec, actor)).To(Succeed())

			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal(auth.SessionCookieName))
			Expect(cookies[0].HttpOnly).To(BeTrue())
		})
	})

	Describe("Current", func() {
		It("returns nil without a cookie", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			Expect(manager.Current(req)).To(BeNil())
		})

		It("returns nil for a tampered token", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "not-a-token"})
			Expect(manager.Current(req)).To(BeNil())
		})

		It("returns nil for a token signed with another secret", func() {
			foreign := auth.NewSessionManager("another-secret-another-secret-xx", time.Hour, false)
			rec := httptest.NewRecorder()
			Expect(foreign.Establish(rec, actor)).To(Succeed())

			Expect(manager.Current(requestWithCookie(rec))).To(BeNil())
		})
	})

	Describe("Terminate", func() {
		It("expires the cookie", func() {
			rec := httptest.NewRecorder()
			manager.Terminate(rec)

			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].MaxAge).To(BeNumerically("<", 0))
			Expect(cookies[0].Value).To(BeEmpty())
		})
	})

	Describe("RequireAdmin", func() {
		It("rejects a standard actor with 403", func() {
			rec := httptest.NewRecorder()
			Expect(manager.Establish(rec, actor)).To(Succeed())

			handlerCalled := false
			h := manager.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
			}))

			out := httptest.NewRecorder()
			h.ServeHTTP(out, requestWithCookie(rec))

			Expect(handlerCalled).To(BeFalse())
			Expect(out.Code).To(Equal(http.StatusForbidden))
		})

		It("redirects anonymous requests to login", func() {
			h := manager.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			out := httptest.NewRecorder()
			h.ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			Expect(out.Code).To(Equal(http.StatusFound))
			Expect(out.Header().Get("Location")).To(Equal("/login"))
		})
	})
})
