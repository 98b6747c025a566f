package predictor

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumAddress(t *testing.T) {
	vectors := []string{
		// EIP-55
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
		// fixture inputs and output
		testImplementation,
		testFactory,
		testParent,
		testPredicted,
		// edge cases: digits only, letters only
		"0x0000000000000000000000000000000000000000",
		"0x1234567890123456789012345678901234567890",
		"0xFFfFfFffFFfffFFfFFfFFFFFffFFFffffFfFFFfF",
		"0xABcdEFABcdEFabcdEfAbCdefabcdeFABcDEFabCD",
	}
	for _, want := range vectors {
		addr := common.HexToAddress(want)
		assert.Equal(t, want, ChecksumAddress(addr))
	}
}

func TestFormatChecksum(t *testing.T) {
	for _, in := range []string{
		strings.ToLower(testPredicted),
		strings.ToUpper("0x" + testPredicted[2:]),
		testPredicted,
	} {
		got, err := FormatChecksum("address", in)
		require.NoError(t, err)
		assert.Equal(t, testPredicted, got)
	}

	_, err := FormatChecksum("address", "0x8c58")
	assert.True(t, IsKind(err, KindFormat))

	_, err = FormatChecksum("address", "8c58EA42dD763cadeB56abbB3C201171b4B42f69")
	assert.True(t, IsKind(err, KindParse))
}

func TestChecksumRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		var addr common.Address
		_, err := rand.Read(addr[:])
		require.NoError(t, err)

		formatted := ChecksumAddress(addr)
		assert.Equal(t, "0x"+common.Bytes2Hex(addr[:]), strings.ToLower(formatted))
		assert.Equal(t, addr.Hex(), formatted)

		again, err := FormatChecksum("address", formatted)
		require.NoError(t, err)
		assert.Equal(t, formatted, again)
	}
}
