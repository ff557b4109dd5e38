package testutil

import (
	"testing"

	"github.com/udisondev/ec2bgen/internal/crypto"
	"github.com/udisondev/ec2bgen/internal/ec2b"
)

// Seeds, из которых MT64 заполняет тестовые таблицы и буферы.
// Эталонные векторы в тестах посчитаны для этих значений — не менять.
const (
	AesXorpad0Seed = 0x7430
	AesXorpad1Seed = 0x7431
	KeyXorpadSeed  = 0x7432
	DataSeed       = 0x7433
)

// MTBytes возвращает n байт выхода MT64 (little-endian слова) для seed.
func MTBytes(seed uint64, n int) []byte {
	b := make([]byte, n)
	_, _ = crypto.NewMT64(seed).Read(b)
	return b
}

// Tables возвращает детерминированные константные таблицы.
// Настоящие таблицы клиента в репозиторий не входят, поэтому тесты
// работают на этих.
func Tables(t testing.TB) *ec2b.Tables {
	t.Helper()

	tables, err := ec2b.NewTables(
		MTBytes(AesXorpad0Seed, ec2b.AesXorpadSize),
		MTBytes(AesXorpad1Seed, ec2b.AesXorpadSize),
		MTBytes(KeyXorpadSeed, ec2b.KeyXorpadSize),
	)
	if err != nil {
		t.Fatalf("building test tables: %v", err)
	}
	return tables
}

// ZeroTables возвращает таблицы из одних нулей (нулевое расписание ключей).
func ZeroTables(t testing.TB) *ec2b.Tables {
	t.Helper()

	tables, err := ec2b.NewTables(
		make([]byte, ec2b.AesXorpadSize),
		make([]byte, ec2b.AesXorpadSize),
		make([]byte, ec2b.KeyXorpadSize),
	)
	if err != nil {
		t.Fatalf("building zero tables: %v", err)
	}
	return tables
}

// Deriver создаёт ec2b.Deriver поверх tables.
func Deriver(t testing.TB, tables *ec2b.Tables) *ec2b.Deriver {
	t.Helper()

	d, err := ec2b.NewDeriver(tables)
	if err != nil {
		t.Fatalf("creating deriver: %v", err)
	}
	return d
}

// SequentialKey возвращает ключ 00 01 02 ... 0f.
func SequentialKey() []byte {
	key := make([]byte, ec2b.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

// Data возвращает детерминированный буфер данных размера ec2b.DataSize.
func Data() []byte {
	return MTBytes(DataSeed, ec2b.DataSize)
}
