package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neeraj921721/product-catalog-backend/internal/apperrors"
)

func TestReadRows(t *testing.T) {
	data := []byte("sku,name,brand,color,mrp,price,quantity\n" +
		"A1,Shirt,Acme,Blue,500,450,10\n" +
		"A2,Bad,Acme,Red,100,150,5\n")

	rows, err := ReadRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.NoError(t, rows[0].Err)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "A1", *rows[0].Raw.SKU)
	assert.Equal(t, "450", *rows[0].Raw.Price)
	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, "Red", *rows[1].Raw.Color)
}

func TestReadRows_HeaderNormalizedAndUnknownColumnsIgnored(t *testing.T) {
	data := []byte("\xEF\xBB\xBF SKU ,Name,Brand,Warehouse,MRP,Price,Quantity\n" +
		"A1,Shirt,Acme,W9,500,450,10\n")

	rows, err := ReadRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	raw := rows[0].Raw
	assert.Equal(t, "A1", *raw.SKU)
	assert.Equal(t, "500", *raw.MRP)
	assert.Nil(t, raw.Color)
}

func TestReadRows_MissingColumnLeavesFieldNil(t *testing.T) {
	rows, err := ReadRows([]byte("sku,name,brand,mrp,price,quantity\nA1,Shirt,Acme,500,450,10\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.NoError(t, rows[0].Err)
	assert.Nil(t, rows[0].Raw.Color)
}

func TestReadRows_WrongFieldCountMarksOnlyThatRow(t *testing.T) {
	data := []byte("sku,name,brand,color,mrp,price,quantity\n" +
		"A1,Shirt,Acme\n" +
		"A2,Hat,Acme,Red,100,90,5\n")

	rows, err := ReadRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Error(t, rows[0].Err)
	assert.Equal(t, "A1", *rows[0].Raw.SKU)
	assert.Nil(t, rows[0].Raw.MRP)
	assert.NoError(t, rows[1].Err)
}

func TestReadRows_BareQuoteMarksRowAndContinues(t *testing.T) {
	data := []byte("sku,name,brand,color,mrp,price,quantity\n" +
		"A1,Sh\"irt,Acme,Blue,500,450,10\n" +
		"A2,Hat,Acme,Red,100,90,5\n")

	rows, err := ReadRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Error(t, rows[0].Err)
	assert.Equal(t, 2, rows[0].Line)
	assert.NoError(t, rows[1].Err)
	assert.Equal(t, "A2", *rows[1].Raw.SKU)
}

func TestReadRows_QuotedFieldsWithCommas(t *testing.T) {
	data := []byte("sku,name,brand,color,mrp,price,quantity\n" +
		"A1,\"Shirt, long sleeve\",Acme,,500,450,10\n")

	rows, err := ReadRows(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Shirt, long sleeve", *rows[0].Raw.Name)
	assert.Equal(t, "", *rows[0].Raw.Color)
}

func TestReadRows_Empty(t *testing.T) {
	rows, err := ReadRows(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = ReadRows([]byte("sku,name,brand,color,mrp,price,quantity\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRows_InvalidUTF8(t *testing.T) {
	_, err := ReadRows([]byte("sku,name\nA1,Caf\xe9\n"))

	var decodeErr *apperrors.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 15, decodeErr.Offset)
}
