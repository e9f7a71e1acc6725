package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-cleaner/utils"
)

const testHeader = "id,host_since,street,neighbourhood_cleansed,property_type," +
	"accommodates,bathrooms,bedrooms,price,guests_included,number_of_reviews,instant_bookable"

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadAll(t *testing.T) {
	content := testHeader + "\n" +
		`1,2014-01-15,"Richmond, Victoria, Australia",Yarra,Apartment,4,1,2,$120.00,2,10,t` + "\n" +
		`2,2015-06-01,"Carlton, Victoria, Australia",Melbourne,House,6,2,3,"$1,250.00",4,3,f` + "\n"

	r := NewCSVReader(writeTempCSV(t, content), utils.NewLogger())
	listings, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Richmond, Victoria, Australia", first.Location)
	assert.Equal(t, "Yarra", first.LGA)
	assert.Equal(t, "$120.00", first.Price)
	assert.Equal(t, "t", first.InstantBookable)

	assert.Equal(t, "$1,250.00", listings[1].Price)
}

func TestReadAllMissingColumnAborts(t *testing.T) {
	// No price column anywhere.
	content := "id,host_since,street\n1,2014-01-15,somewhere\n"

	r := NewCSVReader(writeTempCSV(t, content), utils.NewLogger())
	_, err := r.ReadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required column")
}

func TestReadAllEmptyFileAborts(t *testing.T) {
	r := NewCSVReader(writeTempCSV(t, testHeader+"\n"), utils.NewLogger())
	_, err := r.ReadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestReadAllMissingFileAborts(t *testing.T) {
	r := NewCSVReader(filepath.Join(t.TempDir(), "nope.csv"), utils.NewLogger())
	_, err := r.ReadAll()
	assert.Error(t, err)
}

func TestReadAllToleratesShortRows(t *testing.T) {
	// A truncated row yields empty strings, which the pipeline turns into
	// nulls; the reader must not refuse the file.
	content := testHeader + "\n1,2014-01-15,somewhere\n"

	r := NewCSVReader(writeTempCSV(t, content), utils.NewLogger())
	listings, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "", listings[0].Price)
}

func TestReadAllExtraColumnsIgnored(t *testing.T) {
	content := "scrape_batch," + testHeader + "\n" +
		`b1,1,2014-01-15,"Richmond, Victoria, Australia",Yarra,Apartment,4,1,2,$120.00,2,10,t` + "\n"

	r := NewCSVReader(writeTempCSV(t, content), utils.NewLogger())
	listings, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "1", listings[0].ID)
	assert.Equal(t, "Yarra", listings[0].LGA)
}
