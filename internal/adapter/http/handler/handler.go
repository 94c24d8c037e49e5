package handler

import (
	"time"

	"finance-ledger/internal/adapter/http/dto"
	"finance-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderIdempotencyKey lets the UI mark a command so a double submit is rejected.
const HeaderIdempotencyKey = "Idempotency-Key"

func requestKey(c *gin.Context) string {
	return c.GetHeader(HeaderIdempotencyKey)
}

func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	return dto.ParseID(name, c.Param(name))
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func presenter(svc ports.FinanceService) dto.Presenter {
	return dto.Presenter{Pair: svc.Currencies(), Rate: svc.ExchangeRate(), ToDisplay: svc.DisplayAmount}
}
