package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"reidossalgados/db"
	"reidossalgados/middleware"
	"reidossalgados/models"
	"reidossalgados/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

// Handler serves the admin session endpoints against the `admin` collection.
type Handler struct {
	store *db.Store
	auth  *middleware.Auth
}

func NewHandler(store *db.Store, auth *middleware.Auth) *Handler {
	return &Handler{store: store, auth: auth}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := h.store.Admin.FindOne(ctx, bson.M{"username": input.Username}).Decode(&admin)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tokenString, err := h.issueToken(admin)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	_, err = h.store.Admin.UpdateOne(ctx,
		bson.M{"adminid": admin.AdminID},
		bson.M{"$set": bson.M{"lastLogin": time.Now()}},
	)
	if err != nil {
		log.Println("login: failed to record last login:", err)
	}

	setSessionCookie(w, tokenString, tokenTTL)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token":    tokenString,
		"username": admin.Username,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	setSessionCookie(w, "", -time.Hour)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// Refresh reissues the session cookie for a still-valid token, so an open
// admin panel does not get logged out mid-shift.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := h.auth.ValidateToken(middleware.TokenFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	tokenString, err := h.issueToken(models.Admin{AdminID: claims.AdminID, Username: claims.Username})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	setSessionCookie(w, tokenString, tokenTTL)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": tokenString})
}

// Session reports whether the caller holds a valid session; the admin panel
// probes this on load to decide between login screen and dashboard.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := h.auth.ValidateToken(middleware.TokenFromRequest(r))
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"authenticated": false})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"authenticated": true,
		"username":      claims.Username,
	})
}

func (h *Handler) issueToken(admin models.Admin) (string, error) {
	claims := middleware.Claims{
		Username: admin.Username,
		AdminID:  admin.AdminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.auth.Secret)
}

func setSessionCookie(w http.ResponseWriter, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Seed creates the default admin account when the collection is empty, so a
// fresh deployment can be logged into. Password comes from ADMIN_PASSWORD.
func Seed(ctx context.Context, store *db.Store, username, password string) error {
	err := store.Admin.FindOne(ctx, bson.M{}).Err()
	if err == nil {
		return nil // already provisioned
	}
	if err != mongo.ErrNoDocuments {
		return err
	}
	if password == "" {
		log.Println("auth: admin collection empty and ADMIN_PASSWORD unset; skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = store.Admin.InsertOne(ctx, models.Admin{
		AdminID:   utils.GetUUID(),
		Username:  username,
		Password:  string(hash),
		CreatedAt: time.Now(),
	})
	if err == nil {
		log.Printf("auth: seeded admin account %q", username)
	}
	return err
}
