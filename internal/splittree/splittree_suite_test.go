package splittree_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSplittree(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Splittree Suite")
}
