package products

import (
	"testing"

	"vastra/models"

	"github.com/stretchr/testify/assert"
)

func TestMeanRating(t *testing.T) {
	assert.Zero(t, MeanRating(nil))
	assert.Zero(t, MeanRating([]models.Review{}))

	assert.Equal(t, 4.0, MeanRating([]models.Review{{Rating: 4}}))
	assert.Equal(t, 4.5, MeanRating([]models.Review{{Rating: 4}, {Rating: 5}}))

	// rounds to one decimal
	assert.Equal(t, 3.7, MeanRating([]models.Review{{Rating: 3}, {Rating: 4}, {Rating: 4}}))
	assert.Equal(t, 2.3, MeanRating([]models.Review{{Rating: 1}, {Rating: 3}, {Rating: 3}}))
}
