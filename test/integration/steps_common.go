package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealhub/dealhub/pkg/model"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	tokens       map[string]string // email -> session token
	currentToken string
	userIDs      map[string]string // email -> user id
	productIDs   map[string]string // title -> product id
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:         tc,
		tokens:     make(map[string]string),
		userIDs:    make(map[string]string),
		productIDs: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Scenarios share one database, so each starts from a clean slate
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.reset()
	})

	// Background steps
	sc.Step(`^a Dealhub server is running$`, s.aDealhubServerIsRunning)
	sc.Step(`^an? "([^"]*)" account "([^"]*)" exists with password "([^"]*)"$`, s.anAccountExists)
	sc.Step(`^"([^"]*)" has permission grants "([^"]*)"$`, s.hasPermissionGrants)

	// Authentication steps
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInAs)
	sc.Step(`^I sign up as "([^"]*)" with password "([^"]*)"$`, s.iSignUpAs)
	sc.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, s.iAmLoggedInAs)
	sc.Step(`^I should receive a session token$`, s.iShouldReceiveASessionToken)

	// Product steps
	sc.Step(`^a product "([^"]*)" exists owned by "([^"]*)"$`, s.aProductExistsOwnedBy)
	sc.Step(`^I create a product titled "([^"]*)"$`, s.iCreateAProductTitled)
	sc.Step(`^I retitle the product "([^"]*)" to "([^"]*)"$`, s.iRetitleTheProduct)
	sc.Step(`^I delete the product "([^"]*)"$`, s.iDeleteTheProduct)
	sc.Step(`^product "([^"]*)" should exist$`, s.productShouldExist)
	sc.Step(`^product "([^"]*)" should not exist$`, s.productShouldNotExist)
	sc.Step(`^I browse the products$`, s.iBrowseTheProducts)
	sc.Step(`^the product list should include "([^"]*)"$`, s.theProductListShouldInclude)

	// Wishlist steps
	sc.Step(`^I toggle "([^"]*)" on my wishlist$`, s.iToggleOnMyWishlist)
	sc.Step(`^my wishlist should eventually contain "([^"]*)"$`, s.myWishlistShouldEventuallyContain)
	sc.Step(`^my wishlist should eventually be empty$`, s.myWishlistShouldEventuallyBeEmpty)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the denial reason should be "([^"]*)"$`, s.theDenialReasonShouldBe)
}

func (s *StepsContext) reset() error {
	for _, table := range []string{"users", "products", "ads", "action_buttons", "merchants"} {
		if err := s.tc.DB.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	s.response = nil
	s.responseBody = nil
	s.currentToken = ""
	s.tokens = make(map[string]string)
	s.userIDs = make(map[string]string)
	s.productIDs = make(map[string]string)
	return nil
}

// Background steps

func (s *StepsContext) aDealhubServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) anAccountExists(role, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	if err := s.tc.DB.Exec(`
		INSERT INTO users (id, email, password_hash, role, permissions, wishlist)
		VALUES (?, ?, ?, ?, '{}', '{}')
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role
	`, id, email, string(hash), role).Error; err != nil {
		return err
	}

	var user model.User
	if err := s.tc.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return err
	}
	s.userIDs[email] = user.ID
	return nil
}

func (s *StepsContext) hasPermissionGrants(email, grants string) error {
	parts := []string{}
	for _, g := range strings.Split(grants, ",") {
		if g = strings.TrimSpace(g); g != "" {
			parts = append(parts, g)
		}
	}
	literal := "{" + strings.Join(parts, ",") + "}"
	return s.tc.DB.Exec(`UPDATE users SET permissions = ? WHERE email = ?`, literal, email).Error
}

// Authentication steps

func (s *StepsContext) iLogInAs(email, password string) error {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	if err := s.doRequest("POST", "/authn/login", "", bytes.NewReader(body)); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusOK {
		var session struct {
			Token string `json:"token"`
			User  struct {
				ID string `json:"id"`
			} `json:"user"`
		}
		if err := json.Unmarshal(s.responseBody, &session); err != nil {
			return err
		}
		s.tokens[email] = session.Token
		s.currentToken = session.Token
		s.userIDs[email] = session.User.ID
	}
	return nil
}

func (s *StepsContext) iSignUpAs(email, password string) error {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	if err := s.doRequest("POST", "/authn/signup", "", bytes.NewReader(body)); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusCreated {
		var session struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(s.responseBody, &session); err != nil {
			return err
		}
		s.tokens[email] = session.Token
		s.currentToken = session.Token
	}
	return nil
}

func (s *StepsContext) iAmLoggedInAs(email, password string) error {
	if err := s.iLogInAs(email, password); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login as %s failed with status %d: %s", email, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) iShouldReceiveASessionToken() error {
	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(s.responseBody, &session); err != nil {
		return fmt.Errorf("response is not a session: %w", err)
	}
	if session.Token == "" {
		return fmt.Errorf("no token in response: %s", s.responseBody)
	}
	return nil
}

// Product steps

func (s *StepsContext) aProductExistsOwnedBy(title, email string) error {
	ownerID, ok := s.userIDs[email]
	if !ok {
		return fmt.Errorf("no known account %s", email)
	}

	id := uuid.NewString()
	if err := s.tc.DB.Exec(`
		INSERT INTO products (id, merchant_id, title, category) VALUES (?, ?, ?, 'deals')
	`, id, ownerID, title).Error; err != nil {
		return err
	}
	s.productIDs[title] = id
	return nil
}

func (s *StepsContext) iCreateAProductTitled(title string) error {
	body, _ := json.Marshal(map[string]any{"title": title, "category": "deals"})
	if err := s.doRequest("POST", "/products", s.currentToken, bytes.NewReader(body)); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusCreated {
		var product model.Product
		if err := json.Unmarshal(s.responseBody, &product); err != nil {
			return err
		}
		s.productIDs[title] = product.ID
	}
	return nil
}

func (s *StepsContext) iRetitleTheProduct(title, newTitle string) error {
	id, ok := s.productIDs[title]
	if !ok {
		return fmt.Errorf("no known product %q", title)
	}

	body, _ := json.Marshal(map[string]any{"title": newTitle, "category": "deals"})
	if err := s.doRequest("PUT", "/products/"+id, s.currentToken, bytes.NewReader(body)); err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusOK {
		s.productIDs[newTitle] = id
	}
	return nil
}

func (s *StepsContext) iDeleteTheProduct(title string) error {
	id, ok := s.productIDs[title]
	if !ok {
		return fmt.Errorf("no known product %q", title)
	}
	return s.doRequest("DELETE", "/products/"+id, s.currentToken, nil)
}

func (s *StepsContext) productShouldExist(title string) error {
	var count int64
	if err := s.tc.DB.Model(&model.Product{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("product %q does not exist", title)
	}
	return nil
}

func (s *StepsContext) productShouldNotExist(title string) error {
	var count int64
	if err := s.tc.DB.Model(&model.Product{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("product %q still exists", title)
	}
	return nil
}

func (s *StepsContext) iBrowseTheProducts() error {
	return s.doRequest("GET", "/products", "", nil)
}

func (s *StepsContext) theProductListShouldInclude(title string) error {
	var list struct {
		Products []model.Product `json:"products"`
	}
	if err := json.Unmarshal(s.responseBody, &list); err != nil {
		return err
	}
	for _, p := range list.Products {
		if p.Title == title {
			return nil
		}
	}
	return fmt.Errorf("product %q not in list: %s", title, s.responseBody)
}

// Wishlist steps

func (s *StepsContext) iToggleOnMyWishlist(title string) error {
	id, ok := s.productIDs[title]
	if !ok {
		return fmt.Errorf("no known product %q", title)
	}
	return s.doRequest("POST", "/wishlist/"+id+"/toggle", s.currentToken, nil)
}

// The toggle endpoint responds before the database write lands, so
// wishlist assertions poll until the write is visible.
func (s *StepsContext) myWishlistShouldEventuallyContain(title string) error {
	id, ok := s.productIDs[title]
	if !ok {
		return fmt.Errorf("no known product %q", title)
	}
	return s.pollWishlist(func(ids []string) error {
		for _, got := range ids {
			if got == id {
				return nil
			}
		}
		return fmt.Errorf("wishlist %v does not contain %s", ids, id)
	})
}

func (s *StepsContext) myWishlistShouldEventuallyBeEmpty() error {
	return s.pollWishlist(func(ids []string) error {
		if len(ids) != 0 {
			return fmt.Errorf("wishlist not empty: %v", ids)
		}
		return nil
	})
}

func (s *StepsContext) pollWishlist(check func(ids []string) error) error {
	deadline := time.Now().Add(5 * time.Second)
	var lastErr error

	for time.Now().Before(deadline) {
		if err := s.doRequest("GET", "/wishlist", s.currentToken, nil); err != nil {
			return err
		}
		var wishlist struct {
			ProductIDs []string `json:"product_ids"`
		}
		if err := json.Unmarshal(s.responseBody, &wishlist); err != nil {
			return err
		}
		if lastErr = check(wishlist.ProductIDs); lastErr == nil {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return lastErr
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theDenialReasonShouldBe(reason string) error {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return err
	}
	if body.Reason != reason {
		return fmt.Errorf("expected reason %q, got %q: %s", reason, body.Reason, s.responseBody)
	}
	return nil
}

// doRequest performs an HTTP request against the test server and
// records the response.
func (s *StepsContext) doRequest(method, path, token string, body io.Reader) error {
	req, err := http.NewRequest(method, s.tc.ServerURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}
