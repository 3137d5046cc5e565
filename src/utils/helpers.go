package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"hms/src/config"
	"hms/src/db"
	"hms/src/models"
	"hms/src/types"

	"github.com/golang-jwt/jwt/v4"
)

// Actor is the authenticated identity a state-changing operation runs as.
type Actor struct {
	ID   uint
	Role string
}

func ActorFromContext(id uint, role string) Actor {
	return Actor{ID: id, Role: role}
}

func CanManageResidents(actor Actor) bool {
	return actor.Role == types.ROLE_ADMIN
}

func CanVerifyOwnBooking(actor Actor, studentId uint) bool {
	return actor.ID == studentId
}

// AgeFromDOB derives age in whole years at the given moment. Computed
// once at booking time and stored, not re-derived later.
func AgeFromDOB(dob time.Time, now time.Time) uint {
	years := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return uint(years)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(config.DATE_PARSE_FORMAT, value)
}

// NewInvoiceNumber builds a ledger reference like "FIN-1716899112000".
func NewInvoiceNumber(prefix string) string {
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}

// CreateNotification is fire-and-forget: failures are logged, never
// propagated to the caller.
func CreateNotification(userId uint, ntype types.NotificationType, message string) {
	db := db.GetDb()
	n := models.Notification{
		UserID:  userId,
		Type:    ntype,
		Message: message,
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("Could not create notification for user %d: %s\n", userId, err.Error())
	}
}

func GenerateJWT(username string, userId uint, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userId)),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
