package enrichment

import (
	"errors"
	"fmt"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDuplicateKeyDetection(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(fmt.Errorf("update item: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, isDuplicateKey(fmt.Errorf("update item: %w",
		&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'sunset' for key 'items.slug'"})))

	assert.False(t, isDuplicateKey(nil))
	assert.False(t, isDuplicateKey(errors.New("connection reset")))
	assert.False(t, isDuplicateKey(&mysqldriver.MySQLError{Number: 1205, Message: "Lock wait timeout"}))
	assert.False(t, isDuplicateKey(gorm.ErrRecordNotFound))
}
