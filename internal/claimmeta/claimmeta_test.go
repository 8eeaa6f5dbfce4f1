package claimmeta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/chainclaims/hub/internal/huberr"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestFeeLBCRoundTrip(t *testing.T) {
	var f Fee
	f.SetLBC(dec(t, "1.5"))
	require.Equal(t, CurrencyLBC, f.Currency)
	require.True(t, f.LBC().Equal(dec(t, "1.5")))
}

func TestFeeUSDRoundsUpToNearestCent(t *testing.T) {
	var f Fee
	f.SetUSD(dec(t, "1.001"))
	require.True(t, f.USD().Equal(dec(t, "1.01")), "expected ROUND_UP to 1.01, got %s", f.USD())
}

func TestFeeUSDExactCentStaysExact(t *testing.T) {
	var f Fee
	f.SetUSD(dec(t, "2.50"))
	require.True(t, f.USD().Equal(dec(t, "2.5")), "expected an exact cent amount to round-trip unchanged, got %s", f.USD())
}

func TestFeeWrongCurrencyAccessorPanics(t *testing.T) {
	var f Fee
	f.SetLBC(dec(t, "1"))
	require.Panics(t, func() { f.BTC() })
}

func TestFeeUpdateRejectsAmountWithoutCurrency(t *testing.T) {
	var f Fee
	amount := dec(t, "1")
	require.Error(t, f.Update("", "", &amount))
}

func TestFeeUpdateRejectsCurrencyWithoutAmount(t *testing.T) {
	var f Fee
	require.Error(t, f.Update("", "usd", nil))
}

func TestFeeUpdateSetsAddressAfterCurrencyEstablished(t *testing.T) {
	var f Fee
	amount := dec(t, "1")
	require.NoError(t, f.Update("bAddress", "lbc", &amount))
	require.Equal(t, "bAddress", string(f.AddressRaw))
}

func TestLanguageLangtagRoundTripFull(t *testing.T) {
	var l Language
	require.NoError(t, l.SetLangtag("en-Latn-US"))
	require.Equal(t, "en", l.LanguageCode)
	require.Equal(t, "Latn", l.Script)
	require.Equal(t, "US", l.Region)
	require.Equal(t, "en-Latn-US", l.Langtag())
}

func TestLanguageLangtagRegionOnlyDigits(t *testing.T) {
	var l Language
	require.NoError(t, l.SetLangtag("es-419"))
	require.Equal(t, "es", l.LanguageCode)
	require.Empty(t, l.Script)
	require.Equal(t, "419", l.Region)
}

func TestLanguageLangtagJustLanguage(t *testing.T) {
	var l Language
	require.NoError(t, l.SetLangtag("en"))
	require.Equal(t, "en", l.LanguageCode)
	require.Equal(t, "en", l.Langtag())
}

func TestLanguageLangtagRejectsTrailingGarbage(t *testing.T) {
	var l Language
	require.Error(t, l.SetLangtag("en-Latn-US-extra"))
}

func TestLocationLatitudeBoundsRejected(t *testing.T) {
	var l Location
	require.Error(t, l.SetLatitude("91"))
	require.Error(t, l.SetLatitude("-91"))
}

func TestLocationLongitudeBoundsRejected(t *testing.T) {
	var l Location
	require.Error(t, l.SetLongitude("181"))
}

func TestLocationLatitudeRoundTrip(t *testing.T) {
	var l Location
	require.NoError(t, l.SetLatitude("45.123"))
	require.Equal(t, "45.123", l.Latitude())
}

func TestLocationFromValueDict(t *testing.T) {
	var l Location
	err := l.FromValue(map[string]string{
		"country":  "US",
		"city":     "Anytown",
		"latitude": "10",
	}, "")
	require.NoError(t, err)
	require.Equal(t, "US", l.Country)
	require.Equal(t, "Anytown", l.City)
	require.Equal(t, "10", l.Latitude())
}

func TestLocationFromValueBareLatLong(t *testing.T) {
	var l Location
	require.NoError(t, l.FromValue(nil, "12.34:56.78"))
	require.Empty(t, l.Country)
	require.Equal(t, "12.34", l.Latitude())
	require.Equal(t, "56.78", l.Longitude())
}

func TestLocationFromValueFullColonString(t *testing.T) {
	var l Location
	require.NoError(t, l.FromValue(nil, "US:CA:Anytown:12345:12.34:56.78"))
	require.Equal(t, "US", l.Country)
	require.Equal(t, "CA", l.State)
	require.Equal(t, "Anytown", l.City)
	require.Equal(t, "12345", l.Code)
	require.Equal(t, "12.34", l.Latitude())
	require.Equal(t, "56.78", l.Longitude())
}

func TestSourceFileHashHexRoundTrip(t *testing.T) {
	var s Source
	require.NoError(t, s.SetFileHashHex("0x0102030405"))
	require.Equal(t, "0x0102030405", s.FileHashHex())
}

func TestSourceUpdateMissingFile(t *testing.T) {
	var s Source
	err := s.Update(filepath.Join(t.TempDir(), "does-not-exist"), "video/mp4")
	require.Equal(t, huberr.ErrMissingFile, err)
}

func TestSourceUpdateEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var s Source
	err := s.Update(path, "video/mp4")
	require.Equal(t, huberr.ErrEmptyFile, err)
}

func TestSourceUpdateHashesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	var s Source
	require.NoError(t, s.Update(path, "text/plain"))
	require.Len(t, s.FileHash, 48, "expected a 48-byte SHA-384 digest")
	require.Equal(t, "content.bin", s.Name)
	require.EqualValues(t, len("hello world"), s.Size)
}

func TestDimensionalUpdateOnlySetsGivenFields(t *testing.T) {
	var d Dimensional
	d.Width = 10
	d.Height = 20
	h := 99
	d.Update(&h, nil)
	require.Equal(t, 99, d.Height)
	require.Equal(t, 10, d.Width, "expected width to be left alone")
}

func TestVideoUpdateComposesDimensionalAndPlayable(t *testing.T) {
	var v Video
	h, w, dur := 1080, 1920, 120
	v.Update(&h, &w, &dur)
	require.Equal(t, 1080, v.Height)
	require.Equal(t, 1920, v.Width)
	require.Equal(t, 120, v.DurationSeconds)
}
