package streamline_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStreamline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Streamline Suite")
}
