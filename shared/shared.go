package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"lodging/shared/cache"
	"lodging/shared/constant"
	"lodging/shared/dto"
	"lodging/shared/failure"
	"lodging/shared/timezone"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// moneyScale is the minimum number of decimal places amounts are rendered with.
const moneyScale = 2

// FormatMoney renders an amount with at least two decimal places. Amounts
// carrying more precision are rendered exactly, never rounded.
func FormatMoney(amount decimal.Decimal) string {
	if amount.Exponent() < -moneyScale {
		return amount.String()
	}

	return amount.StringFixed(moneyScale)
}

// ParseMonthYear requires month in [1, 12] and a positive year.
func ParseMonthYear(month, year string) (int, int, error) {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return 0, 0, failure.InvalidMonthOrYear
	}

	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1 {
		return 0, 0, failure.InvalidMonthOrYear
	}

	return m, y, nil
}

// ParseDateTime accepts RFC 3339 instants or bare dates, which are read as UTC midnight.
func ParseDateTime(value string) (time.Time, error) {
	if parsed, err := time.Parse(constant.DateFormat, value); err == nil {
		return parsed, nil
	}

	parsed, err := time.Parse(constant.DayFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s or %s", value, constant.DayFormat, constant.DateFormat)
	}

	return parsed, nil
}

// TransformFields collects the non-zero db-tagged fields of a patch struct
// and stamps the modification metadata.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := val.Type()

	updatedFields := make(map[string]any, typ.NumField()+2)

	for index := range typ.NumField() {
		name := typ.Field(index).Tag.Get("db")
		if name == constant.Empty || name == "-" || val.Field(index).IsZero() {
			continue
		}

		updatedFields[name] = val.Field(index).Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

// CalculateTotalPage never reports less than one page.
func CalculateTotalPage(total, limit int) int {
	if total == 0 || limit <= 0 {
		return 1
	}

	return int(math.Ceil(float64(total) / float64(limit)))
}

// FilterByID matches a single row by its identifier column.
func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the prefix and parts with ":".
func BuildCacheKey(prefix string, parts ...any) string {
	key := prefix
	for _, part := range parts {
		key += fmt.Sprintf(":%v", part)
	}

	return key
}

// BuildCacheKeyWithQuery derives a stable key from list parameters and filters.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Filter dto.FilterGroup `json:"filter"`
	}{params, filter})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache query")

		return BuildCacheKey(prefix, fmt.Sprintf("%+v%+v", params, filter))
	}

	sum := sha256.Sum256(raw)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:8]))
}

// InvalidateCaches removes every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, c cache.Cache, prefix string) {
	pattern := BuildCacheKey(prefix, constant.Asterix)

	if err := c.Clear(ctx, pattern); err != nil {
		log.Error().Err(err).Str("pattern", pattern).Msg("failed to invalidate caches")
	}
}

// QualifySort prefixes an unqualified sort column with table so joined queries stay unambiguous.
func QualifySort(params dto.QueryParams, table string) dto.QueryParams {
	if params.SortBy != constant.Empty && !strings.Contains(params.SortBy, ".") {
		params.SortBy = table + "." + params.SortBy
	}

	return params
}
