package scaffold

import (
	"strings"
	"text/template"
)

const junitSkeleton = `package {{.Package}};

import org.junit.jupiter.api.Test;
import static org.junit.jupiter.api.Assertions.*;

class {{.ClassName}}Test {

    @Test
    void {{.MethodName}}_basic() {
        // TODO: arrange
        {{.ClassName}} c = new {{.ClassName}}();
        // TODO: act
        // var result = c.{{.MethodName}}(/* args */);
        // TODO: assert
        // assertEquals(expected, result);
        assertTrue(true);
    }
}
`

var skeletonTemplate = template.Must(template.New("junit").Parse(junitSkeleton))

type skeletonData struct {
	Package    string
	ClassName  string
	MethodName string
}

// RenderSkeleton renders the JUnit 5 arrange/act/assert skeleton for one method.
func RenderSkeleton(pkg, className, methodName string) (string, error) {
	var sb strings.Builder
	err := skeletonTemplate.Execute(&sb, skeletonData{
		Package:    pkg,
		ClassName:  className,
		MethodName: methodName,
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
